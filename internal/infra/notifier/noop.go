package notifier

import (
	"context"
	"log/slog"
)

// NoOpNotifier discards every message. It stands in for a disabled
// destination so channel adapters never need nil checks.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Notify implements the Notifier interface by doing nothing.
func (n *NoOpNotifier) Notify(_ context.Context, message string) error {
	slog.Debug("noop notifier dropping message",
		slog.Int("message_length", len(message)))
	return nil
}
