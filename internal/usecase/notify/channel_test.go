package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/domain/entity"
	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/infra/notifier"
)

func TestTelexChannel_Disabled(t *testing.T) {
	c := NewTelexChannel(notifier.TelexConfig{Enabled: false})

	if c.IsEnabled() {
		t.Error("channel should report disabled")
	}

	n := &entity.Notification{Message: "msg"}
	if err := c.Send(context.Background(), n); !errors.Is(err, ErrChannelDisabled) {
		t.Errorf("expected ErrChannelDisabled, got %v", err)
	}
}

func TestTelexChannel_RejectsInvalidNotification(t *testing.T) {
	c := NewTelexChannel(notifier.TelexConfig{
		Enabled:   true,
		APIBase:   "https://api.staging.telex.im/api/v1",
		ChannelID: "c",
		Token:     "t",
		Timeout:   time.Second,
	})

	if err := c.Send(context.Background(), nil); !errors.Is(err, ErrInvalidNotification) {
		t.Errorf("expected ErrInvalidNotification for nil, got %v", err)
	}

	empty := &entity.Notification{Title: "t"}
	if err := c.Send(context.Background(), empty); !errors.Is(err, ErrInvalidNotification) {
		t.Errorf("expected ErrInvalidNotification for empty message, got %v", err)
	}
}

func TestWebhookChannel_Disabled(t *testing.T) {
	c := NewWebhookChannel(notifier.WebhookConfig{Enabled: false})

	if c.IsEnabled() {
		t.Error("channel should report disabled")
	}
	if c.Name() != "webhook" {
		t.Errorf("unexpected name %q", c.Name())
	}

	n := &entity.Notification{Message: "msg"}
	if err := c.Send(context.Background(), n); !errors.Is(err, ErrChannelDisabled) {
		t.Errorf("expected ErrChannelDisabled, got %v", err)
	}
}

func TestWebhookChannel_RejectsInvalidNotification(t *testing.T) {
	c := NewWebhookChannel(notifier.WebhookConfig{
		Enabled:    true,
		WebhookURL: "https://ping.telex.im/v1/webhooks/abc",
		Timeout:    time.Second,
	})

	if err := c.Send(context.Background(), &entity.Notification{}); !errors.Is(err, ErrInvalidNotification) {
		t.Errorf("expected ErrInvalidNotification, got %v", err)
	}
}
