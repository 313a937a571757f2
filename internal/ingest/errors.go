package ingest

import (
	"errors"
	"strings"
)

var (
	// ErrMissingColumns is matched by MissingColumnsError.
	ErrMissingColumns = errors.New("the CSV file does not contain the required columns")

	// ErrNoHeader is returned when the input has no header line.
	ErrNoHeader = errors.New("the CSV file is empty: no header row found")

	// ErrNoRows is returned when the input has a header but no data rows.
	ErrNoRows = errors.New("the CSV file contains no data rows")

	// ErrUnknownEncoding is returned for an unsupported encoding name.
	ErrUnknownEncoding = errors.New("unsupported input encoding")
)

// MissingColumnsError lists the required columns absent from the header.
type MissingColumnsError struct {
	Missing []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		quoted[i] = "'" + m + "'"
	}
	return ErrMissingColumns.Error() + ": " + strings.Join(quoted, ", ")
}

// Is makes errors.Is(err, ErrMissingColumns) succeed.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
