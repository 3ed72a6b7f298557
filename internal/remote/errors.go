package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes callers branch on
var (
	// ErrAuthRequired means the backend rejected the request for a missing
	// or expired token.
	ErrAuthRequired = errors.New("authentication required")
	// ErrNotFound means the requested remote resource does not exist.
	ErrNotFound = errors.New("not found")
)

// Error carries the backend's status code and response body for failures
// that are not one of the sentinel cases.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("remote returned %d", e.StatusCode)
}

// statusError maps an HTTP status to the matching error value.
func statusError(status int, body string) error {
	switch status {
	case 401, 403:
		return ErrAuthRequired
	case 404:
		return ErrNotFound
	default:
		return &Error{StatusCode: status, Body: body}
	}
}
