// Package notifier provides the outbound transports for delivering formatted
// feed notifications: the Telex channel API and a generic webhook. Both share
// one retry discipline and apply their own rate limiting.
package notifier

import "context"

// Notifier sends one formatted message to a destination.
// Implementations handle rate limiting, retries, and error classification
// internally; a returned error means the message is definitively undelivered.
type Notifier interface {
	// Notify posts the message. It rejects empty messages immediately with
	// ErrEmptyMessage, consuming no retry attempts. Transient transport
	// failures are retried with exponential backoff; after exhaustion the
	// underlying error propagates to the caller.
	Notify(ctx context.Context, message string) error
}
