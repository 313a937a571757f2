package model

// Status is the overall outcome of a run.
type Status int

const (
	// StatusSucceeded means a report file was written.
	StatusSucceeded Status = iota

	// StatusFailed means the run was aborted and no report was written.
	StatusFailed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureReason tags why a run failed.
type FailureReason int

const (
	// ReasonNone is used for successful runs.
	ReasonNone FailureReason = iota

	// ReasonInput covers user input errors: no file, unreadable file,
	// missing required columns, no data rows.
	ReasonInput

	// ReasonUnexpected covers everything else, such as a failed write.
	ReasonUnexpected

	// ReasonCanceled means the run was interrupted.
	ReasonCanceled
)

// String returns a human-readable representation of the reason.
func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInput:
		return "input"
	case ReasonUnexpected:
		return "unexpected"
	case ReasonCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result is the structured outcome handed back to whatever shell drives the
// pipeline. It replaces message boxes with a value the caller can inspect.
type Result struct {
	Status     Status
	Reason     FailureReason
	OutputPath string

	// Err is the error that aborted the run. Nil on success.
	Err error

	// Warning is a non-fatal problem, currently only enrichment failures.
	Warning error

	Stats Stats
}

// OK reports whether the run produced a report file.
func (r Result) OK() bool {
	return r.Status == StatusSucceeded
}

// Succeeded builds a successful Result from a completed run.
func Succeeded(run *Run) Result {
	return Result{
		Status:     StatusSucceeded,
		Reason:     ReasonNone,
		OutputPath: run.OutputPath,
		Warning:    run.EnrichmentErr,
		Stats:      run.Stats(),
	}
}

// Failed builds a failed Result. The run may be partially filled.
func Failed(reason FailureReason, err error, run *Run) Result {
	res := Result{
		Status: StatusFailed,
		Reason: reason,
		Err:    err,
	}
	if run != nil {
		res.Warning = run.EnrichmentErr
		res.Stats = run.Stats()
	}
	return res
}
