package feed

import (
	"errors"
	"fmt"
)

// Feed errors.
// These errors describe why a feed request produced no enrichment data.
// Callers can use errors.Is to tell them apart, for example to print a hint
// about credentials on ErrUnauthorized.
var (
	// ErrUnauthorized is returned when the feed rejects the configured
	// Basic auth credentials with 401.
	ErrUnauthorized = errors.New("feed authorization failed: check the feed username and password")

	// ErrMalformedResponse is returned when the response body is not a
	// well-formed XML document.
	ErrMalformedResponse = errors.New("malformed feed response")

	// ErrInvalidBaseURL is returned when the configured feed URL can not be parsed.
	ErrInvalidBaseURL = errors.New("invalid feed URL")
)

// maxErrorBody is the number of response bytes kept in an APIError.
const maxErrorBody = 512

// APIError represents a non-200 response other than 401.
type APIError struct {
	StatusCode int
	Body       string // first 512 bytes
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("feed returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("feed returned HTTP %d: %s", e.StatusCode, e.Body)
}

// newAPIError truncates the body and builds an APIError.
func newAPIError(status int, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &APIError{StatusCode: status, Body: string(body)}
}
