package notifier

import (
	"errors"
	"fmt"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "request_id"

// ErrEmptyMessage indicates a delivery attempt with an empty message.
// It fails fast: no HTTP request is made and no retry attempt is consumed.
var ErrEmptyMessage = errors.New("message is empty")

// ClientError represents a 4xx response from a delivery endpoint.
// Client errors are never retried.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("delivery client error (HTTP %d): %s", e.StatusCode, e.Message)
}

// ServerError represents a 5xx response from a delivery endpoint.
// Server errors are transient and retried.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("delivery server error (HTTP %d): %s", e.StatusCode, e.Message)
}

// isRetryable classifies delivery failures for the retry policy:
// server errors and transport-level failures are retryable, client errors
// are not.
func isRetryable(err error) bool {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}

	// Network errors, timeouts, connection resets.
	return true
}
