// Package ledger keeps a small SQLite record of generated reports.
//
// Each successful generate run stores one entry keyed by its output path:
// where the input came from (path and SHA3-256 digest), which file was
// written, in which format, and the run counters. Regenerating the same
// report refreshes its entry instead of adding a new one.
//
// The clear command uses the ledger to find the most recent report that
// has not been cleared yet, across process invocations; history lists the
// entries. Report contents are never stored.
//
// Design decision: SQLite through modernc.org/sqlite, so the binary stays
// CGO-free and the ledger is a single file in the XDG data directory.
package ledger
