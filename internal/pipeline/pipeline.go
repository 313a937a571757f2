package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/backlinkreport/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps run in order and each one reads what earlier steps stored on the run.
type Step interface {
	// Do executes the step. A returned error aborts the run; problems the
	// run can live with are recorded on the run and nil is returned.
	Do(ctx context.Context, run *model.Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps are added with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step for a fresh run of rc and classifies the outcome.
func (p *Pipeline) Execute(ctx context.Context, rc model.RunContext) model.Result {
	run := model.NewRun(rc)
	if err := p.ExecuteRun(ctx, run); err != nil {
		return model.Failed(classify(err), err, run)
	}
	return model.Succeeded(run)
}

// ExecuteRun runs the steps against an existing run and returns the first
// error. Cancellation is checked before each step; a step in progress
// handles the context itself.
func (p *Pipeline) ExecuteRun(ctx context.Context, run *model.Run) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"input", run.Context.InputPath,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"error", err,
			)
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}
	return nil
}

// classify maps a step error to the failure reason reported to the user.
func classify(err error) model.FailureReason {
	var ie *InputError
	switch {
	case errors.As(err, &ie):
		return model.ReasonInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return model.ReasonCanceled
	default:
		return model.ReasonUnexpected
	}
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
