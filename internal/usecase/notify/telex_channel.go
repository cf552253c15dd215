package notify

import (
	"context"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/infra/notifier"
)

// TelexChannel adapts the direct Telex channel API notifier to the Channel
// interface. When disabled, the underlying notifier is a NoOpNotifier so the
// Channel contract is always satisfied without nil checks.
type TelexChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewTelexChannel creates a Telex channel from the given configuration.
func NewTelexChannel(config notifier.TelexConfig) *TelexChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewTelexNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}

	return &TelexChannel{
		notifier: n,
		enabled:  config.Enabled,
	}
}

// Name returns the channel identifier "telex".
func (c *TelexChannel) Name() string {
	return "telex"
}

// IsEnabled reports whether channel delivery is enabled via configuration.
func (c *TelexChannel) IsEnabled() bool {
	return c.enabled
}

// Send delivers one notification to the Telex channel API.
func (c *TelexChannel) Send(ctx context.Context, n *entity.Notification) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if !n.Deliverable() {
		return ErrInvalidNotification
	}
	return c.notifier.Notify(ctx, n.Message)
}
