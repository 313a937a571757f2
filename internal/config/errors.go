package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Sentinels let callers use errors.Is while the messages stay readable.
var (
	// ErrInvalidFeedURL is returned when the feed URL is empty or not absolute.
	ErrInvalidFeedURL = errors.New("invalid feed url: must be an absolute http(s) URL")

	// ErrInvalidSummaryURL is returned when the summary URL is set but not absolute.
	ErrInvalidSummaryURL = errors.New("invalid summary url: must be an absolute http(s) URL")

	// ErrInvalidFeedID is returned when the feed id is not positive.
	ErrInvalidFeedID = errors.New("invalid feed id: must be positive")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoOutputDir is returned when no output directory is configured and
	// no desktop directory could be determined.
	ErrNoOutputDir = errors.New("no output directory: set --output-dir or output.dir")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid report format: use xlsx, csv, markdown or json")

	// ErrInvalidEncoding is returned for an unsupported input encoding.
	ErrInvalidEncoding = errors.New("invalid input encoding: use utf-16, utf-16le, utf-16be or utf-8")
)
