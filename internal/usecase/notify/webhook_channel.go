package notify

import (
	"context"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/infra/notifier"
)

// WebhookChannel adapts the generic webhook notifier to the Channel
// interface. Payload shape is the only difference from TelexChannel; both
// share the same retry discipline through the underlying notifier.
type WebhookChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewWebhookChannel creates a webhook channel from the given configuration.
func NewWebhookChannel(config notifier.WebhookConfig) *WebhookChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewWebhookNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}

	return &WebhookChannel{
		notifier: n,
		enabled:  config.Enabled,
	}
}

// Name returns the channel identifier "webhook".
func (c *WebhookChannel) Name() string {
	return "webhook"
}

// IsEnabled reports whether webhook delivery is enabled via configuration.
func (c *WebhookChannel) IsEnabled() bool {
	return c.enabled
}

// Send delivers one notification to the configured webhook URL.
func (c *WebhookChannel) Send(ctx context.Context, n *entity.Notification) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if !n.Deliverable() {
		return ErrInvalidNotification
	}
	return c.notifier.Notify(ctx, n.Message)
}
