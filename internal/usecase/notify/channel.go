// Package notify defines the delivery-channel abstraction for formatted feed
// notifications. Channels wrap the transport implementations in
// internal/infra/notifier so the fetch cycle can deliver to a Telex channel
// API or a generic webhook interchangeably.
package notify

import (
	"context"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
)

// Channel represents one notification destination.
//
// Retry discipline is owned by the underlying notifier: transient failures
// (connection reset, timeout, 5xx) are retried with exponential backoff,
// everything else fails fast. A Send error therefore means the delivery is
// definitively lost for this item; the caller decides whether to continue
// with the rest of the queue.
//
// Implementations must be safe for concurrent use and must respect context
// cancellation.
type Channel interface {
	// Name returns the channel identifier used in logs and metrics
	// (lowercase, e.g. "telex", "webhook").
	Name() string

	// IsEnabled reports whether the channel is enabled via configuration.
	// Disabled channels are skipped during delivery.
	IsEnabled() bool

	// Send delivers one formatted notification to this channel.
	// It fails fast with ErrInvalidNotification when the notification is
	// nil or carries an empty message, consuming no retry attempts.
	Send(ctx context.Context, n *entity.Notification) error
}
