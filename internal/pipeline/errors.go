package pipeline

import "errors"

// ErrNoInputFile is returned when the run has no input path.
var ErrNoInputFile = errors.New("no input file selected")

// InputError marks a failure caused by the user's input file. The pipeline
// reports it with model.ReasonInput.
type InputError struct {
	Err error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Err
}

// inputError wraps err as an *InputError.
func inputError(err error) error {
	return &InputError{Err: err}
}
