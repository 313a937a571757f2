package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/backlinkreport/internal/config"
	"github.com/nao1215/backlinkreport/internal/feed"
	"github.com/nao1215/backlinkreport/internal/ingest"
	"github.com/nao1215/backlinkreport/internal/model"
	"github.com/nao1215/backlinkreport/internal/report"
	"github.com/nao1215/backlinkreport/internal/token"
)

// Step names.
const (
	StepRead    = "read"
	StepExtract = "extract"
	StepEnrich  = "enrich"
	StepBuild   = "build"
	StepWrite   = "write"
	StepRecord  = "record"
)

// ReadStep loads and validates the input file.
// Every failure here is an input error: missing path, unreadable file,
// missing required columns or a file without data rows.
type ReadStep struct {
	encoding ingest.Encoding
}

// NewReadStep creates a read step decoding input with enc.
func NewReadStep(enc ingest.Encoding) *ReadStep {
	return &ReadStep{encoding: enc}
}

// Name returns the step name.
func (s *ReadStep) Name() string {
	return StepRead
}

// Do reads run.Context.InputPath into run.Table.
func (s *ReadStep) Do(_ context.Context, run *model.Run) error {
	if run.Context.InputPath == "" {
		return inputError(ErrNoInputFile)
	}

	table, err := ingest.ReadFile(run.Context.InputPath, s.encoding)
	if err != nil {
		return inputError(err)
	}
	if len(table.Rows) == 0 {
		return inputError(ingest.ErrNoRows)
	}

	run.Table = table
	return nil
}

// ExtractStep collects the unique tokens of all target URLs.
type ExtractStep struct {
	logger *slog.Logger
}

// NewExtractStep creates an extract step.
func NewExtractStep(logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return StepExtract
}

// Do fills run.Tokens.
func (s *ExtractStep) Do(_ context.Context, run *model.Run) error {
	run.Tokens = token.Unique(run.Table.Rows)
	s.logger.Debug("extracted tokens",
		"rows", len(run.Table.Rows),
		"unique", len(run.Tokens),
	)
	return nil
}

// Enricher resolves tokens to enrichment records.
// *feed.Client implements it.
type Enricher interface {
	Enrich(ctx context.Context, tokens []model.Token) (model.Lookup, error)
}

// EnrichStep sends the token batch to the feed.
// A failed lookup leaves the run with an empty lookup and the error stored
// in run.EnrichmentErr; only cancellation of ctx aborts the run.
type EnrichStep struct {
	enricher Enricher
}

// NewEnrichStep creates an enrich step.
func NewEnrichStep(enricher Enricher) *EnrichStep {
	return &EnrichStep{enricher: enricher}
}

// Name returns the step name.
func (s *EnrichStep) Name() string {
	return StepEnrich
}

// Do fills run.Lookup.
func (s *EnrichStep) Do(ctx context.Context, run *model.Run) error {
	lookup, err := s.enricher.Enrich(ctx, run.Tokens)
	if lookup == nil {
		lookup = model.Lookup{}
	}
	run.Lookup = lookup

	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return ctx.Err()
		}
		run.EnrichmentErr = err
	}
	return nil
}

// BuildStep joins input rows with the lookup.
type BuildStep struct{}

// NewBuildStep creates a build step.
func NewBuildStep() *BuildStep {
	return &BuildStep{}
}

// Name returns the step name.
func (s *BuildStep) Name() string {
	return StepBuild
}

// Do fills run.Rows.
func (s *BuildStep) Do(_ context.Context, run *model.Run) error {
	run.Rows = report.Build(run.Table.Rows, run.Lookup)
	return nil
}

// WriteStep writes the report file into the output directory.
// The file name comes from the first row's domain and the run date, so
// running twice on the same day overwrites the earlier file.
type WriteStep struct {
	// extra writers receive the rows after the file is written.
	extra []report.Writer
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithPreview also renders the rows as a markdown table to w.
func WithPreview(w io.Writer) WriteStepOption {
	return func(s *WriteStep) {
		s.extra = append(s.extra, report.NewMarkdownWriter(w))
	}
}

// NewWriteStep creates a write step.
func NewWriteStep(opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return StepWrite
}

// Do writes the report and sets run.OutputPath.
func (s *WriteStep) Do(_ context.Context, run *model.Run) error {
	rc := run.Context
	name := report.FileName(report.FirstTargetURL(run.Table.Rows), rc.Date(), rc.Format)
	path := filepath.Join(rc.OutputDir, name)

	if err := report.WriteFile(path, rc.Format, run.Rows, s.extra...); err != nil {
		return err
	}
	run.OutputPath = path
	return nil
}

// Recorder stores a completed run.
// *ledger.Ledger implements it.
type Recorder interface {
	Record(ctx context.Context, run *model.Run) error
}

// RecordStep stores the run in the ledger. A failure is logged and does
// not fail the run: the report file already exists.
type RecordStep struct {
	recorder Recorder
	logger   *slog.Logger
}

// NewRecordStep creates a record step.
func NewRecordStep(recorder Recorder, logger *slog.Logger) *RecordStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStep{recorder: recorder, logger: logger}
}

// Name returns the step name.
func (s *RecordStep) Name() string {
	return StepRecord
}

// Do records the run.
func (s *RecordStep) Do(ctx context.Context, run *model.Run) error {
	if err := s.recorder.Record(ctx, run); err != nil {
		s.logger.Warn("failed to record run in ledger",
			"output", run.OutputPath,
			"error", err,
		)
	}
	return nil
}

// DefaultPipelineConfig holds the collaborators DefaultPipeline wires in.
type DefaultPipelineConfig struct {
	// Enricher replaces the feed client built from the configuration.
	Enricher Enricher

	// Recorder, when set, adds the record step.
	Recorder Recorder

	// Preview receives a markdown rendering of the report.
	Preview io.Writer
}

// DefaultPipelineOption configures DefaultPipeline.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithEnricher replaces the feed client.
func WithEnricher(e Enricher) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Enricher = e
	}
}

// WithRecorder records successful runs.
func WithRecorder(r Recorder) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Recorder = r
	}
}

// WithPipelinePreview writes a markdown preview of the report to w.
func WithPipelinePreview(w io.Writer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Preview = w
	}
}

// NewFeedClient builds the feed client described by cfg.
func NewFeedClient(cfg *config.Config, logger *slog.Logger) *feed.Client {
	return feed.New(cfg.FeedURL, cfg.Username, cfg.Password,
		feed.WithFeedID(cfg.FeedID),
		feed.WithSummaryURL(cfg.SummaryURL),
		feed.WithTimeout(cfg.Timeout),
		feed.WithUserAgent(cfg.UserAgent),
		feed.WithMaxBodySize(cfg.MaxBodySize),
		feed.WithLogger(logger),
	)
}

// DefaultPipeline assembles read, extract, enrich, build and write, plus
// record when a Recorder is given.
func DefaultPipeline(cfg *config.Config, pipelineOpts []Option, configOpts ...DefaultPipelineOption) (*Pipeline, error) {
	p := New(pipelineOpts...)

	dc := &DefaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(dc)
	}

	enc, err := cfg.InputEncoding()
	if err != nil {
		return nil, err
	}
	if dc.Enricher == nil {
		dc.Enricher = NewFeedClient(cfg, p.logger)
	}

	var writeOpts []WriteStepOption
	if dc.Preview != nil {
		writeOpts = append(writeOpts, WithPreview(dc.Preview))
	}

	p.AddSteps(
		NewReadStep(enc),
		NewExtractStep(p.logger),
		NewEnrichStep(dc.Enricher),
		NewBuildStep(),
		NewWriteStep(writeOpts...),
	)
	if dc.Recorder != nil {
		p.AddStep(NewRecordStep(dc.Recorder, p.logger))
	}

	return p, nil
}

// LoadPipeline assembles read and extract only. It validates an input file
// without contacting the feed or writing anything.
func LoadPipeline(cfg *config.Config, pipelineOpts ...Option) (*Pipeline, error) {
	p := New(pipelineOpts...)

	enc, err := cfg.InputEncoding()
	if err != nil {
		return nil, err
	}
	p.AddSteps(NewReadStep(enc), NewExtractStep(p.logger))
	return p, nil
}
