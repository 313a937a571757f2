package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/backlinkreport/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *model.Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *model.Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	if p.StepCount() != 0 {
		t.Fatalf("expected 0 steps, got %d", p.StepCount())
	}

	p.AddStep(&mockStep{name: "a"})
	p.AddSteps(&mockStep{name: "b"}, &mockStep{name: "c"})

	if diff := cmp.Diff([]string{"a", "b", "c"}, p.StepNames()); diff != "" {
		t.Errorf("step names mismatch (-want +got):\n%s", diff)
	}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	rc := model.NewRunContext("in.csv", "/tmp", model.FormatXLSX)

	t.Run("runs steps in order and succeeds", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(_ context.Context, run *model.Run) error {
				order = append(order, name)
				if name == "write" {
					run.OutputPath = "/tmp/out.xlsx"
				}
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("read"), record("build"), record("write"))

		res := p.Execute(t.Context(), rc)
		if !res.OK() {
			t.Fatalf("expected success, got %+v", res)
		}
		if res.OutputPath != "/tmp/out.xlsx" {
			t.Errorf("unexpected output path %q", res.OutputPath)
		}
		if diff := cmp.Diff([]string{"read", "build", "write"}, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("input error stops the run", func(t *testing.T) {
		t.Parallel()

		later := &mockStep{name: "later"}
		p := New()
		p.AddSteps(&mockStep{name: "read", doFunc: func(context.Context, *model.Run) error {
			return inputError(ErrNoInputFile)
		}}, later)

		res := p.Execute(t.Context(), rc)
		if res.OK() || res.Reason != model.ReasonInput {
			t.Fatalf("expected input failure, got %+v", res)
		}
		if !errors.Is(res.Err, ErrNoInputFile) {
			t.Errorf("expected ErrNoInputFile, got %v", res.Err)
		}
		if !strings.HasPrefix(res.Err.Error(), "read: ") {
			t.Errorf("expected step name prefix, got %q", res.Err.Error())
		}
		if later.callCount != 0 {
			t.Error("expected later step not to run")
		}
	})

	t.Run("other errors are unexpected", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "write", doFunc: func(context.Context, *model.Run) error {
			return errors.New("disk full")
		}})

		res := p.Execute(t.Context(), rc)
		if res.Reason != model.ReasonUnexpected {
			t.Errorf("expected unexpected failure, got %v", res.Reason)
		}
		if res.OutputPath != "" {
			t.Errorf("expected no output path, got %q", res.OutputPath)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		step := &mockStep{name: "read"}
		p := New()
		p.AddStep(step)

		res := p.Execute(ctx, rc)
		if res.Reason != model.ReasonCanceled {
			t.Errorf("expected canceled, got %v", res.Reason)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
	})

	t.Run("performed steps are recorded", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "a"}, &mockStep{name: "b"})

		run := model.NewRun(rc)
		if err := p.ExecuteRun(t.Context(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"a", "b"}, run.PerformedSteps); diff != "" {
			t.Errorf("performed steps mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPipelineWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := New(WithLogger(logger))
	p.AddStep(&mockStep{name: "custom"})
	p.Execute(t.Context(), model.NewRunContext("", "", model.FormatCSV))

	if !strings.Contains(buf.String(), "step=custom") {
		t.Errorf("expected step to be logged, got %q", buf.String())
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want model.FailureReason
	}{
		{err: inputError(errors.New("x")), want: model.ReasonInput},
		{err: errors.Join(errors.New("wrapped"), inputError(errors.New("x"))), want: model.ReasonInput},
		{err: context.Canceled, want: model.ReasonCanceled},
		{err: context.DeadlineExceeded, want: model.ReasonCanceled},
		{err: errors.New("boom"), want: model.ReasonUnexpected},
	}
	for _, tt := range tests {
		if got := classify(tt.err); got != tt.want {
			t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
