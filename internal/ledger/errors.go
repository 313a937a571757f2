package ledger

import "errors"

var (
	// ErrNoRuns is returned when the ledger has no uncleared run.
	ErrNoRuns = errors.New("no generated report to clear")

	// ErrRunNotFound is returned when an entry id does not exist.
	ErrRunNotFound = errors.New("run not found in ledger")
)
