package model

import (
	"time"
)

// RunContext carries everything a report generation needs to know about
// its invocation. It is passed by value and never modified by the pipeline.
//
// Design decision: The input and output paths travel in this value instead of
// living on a long-lived object. Two runs in the same process therefore can
// not observe each other's paths.
type RunContext struct {
	// InputPath is the backlink CSV to read.
	InputPath string

	// OutputDir is the directory the report file is written to.
	OutputDir string

	// Format selects the report writer.
	Format Format

	// Now is the clock used for the report date. It defaults to time.Now.
	Now func() time.Time
}

// NewRunContext creates a RunContext using the wall clock.
func NewRunContext(inputPath, outputDir string, format Format) RunContext {
	return RunContext{
		InputPath: inputPath,
		OutputDir: outputDir,
		Format:    format,
		Now:       time.Now,
	}
}

// Date returns the run date according to the context's clock.
func (rc RunContext) Date() time.Time {
	if rc.Now == nil {
		return time.Now()
	}
	return rc.Now()
}

// Run is the working state of one report generation.
// Pipeline steps fill it in order: table, tokens, lookup, rows, output path.
type Run struct {
	// Context is the immutable invocation context.
	Context RunContext

	// Table is the parsed input file.
	Table *Table

	// Tokens are the unique tokens extracted from the target URLs,
	// in first-seen order.
	Tokens []Token

	// Lookup is the enrichment data returned by the feed. It is never nil
	// after the enrich step, even when the feed failed.
	Lookup Lookup

	// EnrichmentErr records why enrichment failed, if it did.
	// The run still completes with blank enrichment columns.
	EnrichmentErr error

	// Rows are the report rows, one per input row.
	Rows []ReportRow

	// OutputPath is the file the report was written to.
	OutputPath string

	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string
}

// NewRun creates an empty Run for the given context.
func NewRun(rc RunContext) *Run {
	return &Run{
		Context: rc,
	}
}

// Stats returns counters describing the run so far.
func (r *Run) Stats() Stats {
	var s Stats
	if r.Table != nil {
		s.Rows = len(r.Table.Rows)
		s.SkippedLines = r.Table.SkippedLines
	}
	s.UniqueTokens = len(r.Tokens)
	for _, t := range r.Tokens {
		if _, ok := r.Lookup.Get(t); ok {
			s.EnrichedTokens++
		}
	}
	return s
}

// Stats summarizes a run.
type Stats struct {
	Rows           int `json:"rows"`
	UniqueTokens   int `json:"unique_tokens"`
	EnrichedTokens int `json:"enriched_tokens"`
	SkippedLines   int `json:"skipped_lines"`
}
