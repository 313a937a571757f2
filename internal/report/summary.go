package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/backlinkreport/internal/model"
)

// SummaryWriter prints the plain text messages the CLI shows after loading
// a file or generating a report.
type SummaryWriter struct {
	baseWriter

	// verbose adds the run counters to result output.
	verbose bool
}

// SummaryWriterOption configures a SummaryWriter.
type SummaryWriterOption func(*SummaryWriter)

// WithVerbose includes the run statistics in result output.
func WithVerbose(verbose bool) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.verbose = verbose
	}
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer, opts ...SummaryWriterOption) *SummaryWriter {
	w := &SummaryWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteLoad reports a successfully loaded input file.
func (w *SummaryWriter) WriteLoad(path string, table *model.Table, uniqueTokens int) error {
	var sb strings.Builder
	sb.WriteString("File loaded\n")
	fmt.Fprintf(&sb, "  File:          %s\n", path)
	fmt.Fprintf(&sb, "  Delimiter:     %s\n", table.DelimiterName())
	fmt.Fprintf(&sb, "  Rows:          %d\n", len(table.Rows))
	fmt.Fprintf(&sb, "  Unique tokens: %d\n", uniqueTokens)
	if table.SkippedLines > 0 {
		fmt.Fprintf(&sb, "  Skipped lines: %d (malformed)\n", table.SkippedLines)
	}

	_, err := io.WriteString(w.output, sb.String())
	return err
}

// WriteResult reports the outcome of a generate run.
// Failures are not written here; the CLI returns them as errors.
func (w *SummaryWriter) WriteResult(res model.Result) error {
	if !res.OK() {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Report generated: %s\n", res.OutputPath)
	if res.Warning != nil {
		fmt.Fprintf(&sb, "Warning: affiliate data unavailable, enrichment columns are blank (%v)\n", res.Warning)
	}
	if res.Stats.SkippedLines > 0 {
		fmt.Fprintf(&sb, "Warning: %d malformed input lines were skipped\n", res.Stats.SkippedLines)
	}
	if w.verbose {
		fmt.Fprintf(&sb, "  Rows:            %d\n", res.Stats.Rows)
		fmt.Fprintf(&sb, "  Unique tokens:   %d\n", res.Stats.UniqueTokens)
		fmt.Fprintf(&sb, "  Enriched tokens: %d\n", res.Stats.EnrichedTokens)
	}

	_, err := io.WriteString(w.output, sb.String())
	return err
}
