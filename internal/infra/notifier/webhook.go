package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/resilience/retry"
)

// Default metadata fields carried in every webhook payload.
const (
	DefaultEventName = "rss_update"
	DefaultStatus    = "success"
	DefaultUsername  = "collins"
)

// WebhookConfig contains configuration for generic webhook delivery.
type WebhookConfig struct {
	// Enabled indicates whether webhook delivery is enabled
	Enabled bool

	// WebhookURL is the destination webhook URL (no auth header is sent)
	WebhookURL string

	// EventName is the event_name field of the payload (default "rss_update")
	EventName string

	// Status is the status field of the payload (default "success")
	Status string

	// Username is the username field of the payload (default "collins")
	Username string

	// Timeout is the HTTP request timeout for webhook calls
	Timeout time.Duration
}

// WebhookNotifier posts messages to a configured webhook URL with fixed
// metadata fields alongside the message.
type WebhookNotifier struct {
	config      WebhookConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
	retryPolicy retry.Policy
}

// NewWebhookNotifier creates a WebhookNotifier with the shared network retry
// policy and a 1 req/s rate limiter. Empty metadata fields fall back to the
// package defaults.
func NewWebhookNotifier(config WebhookConfig) *WebhookNotifier {
	if config.EventName == "" {
		config.EventName = DefaultEventName
	}
	if config.Status == "" {
		config.Status = DefaultStatus
	}
	if config.Username == "" {
		config.Username = DefaultUsername
	}

	policy := retry.NetworkPolicy()
	policy.ShouldRetry = isRetryable

	return &WebhookNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
		retryPolicy: policy,
	}
}

// webhookPayload is the JSON body posted to the webhook URL.
type webhookPayload struct {
	EventName string `json:"event_name"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Username  string `json:"username"`
}

// Notify implements the Notifier interface.
func (w *WebhookNotifier) Notify(ctx context.Context, message string) error {
	if message == "" {
		return ErrEmptyMessage
	}

	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("sending message to webhook",
		slog.String("request_id", requestID),
		slog.String("event_name", w.config.EventName),
		slog.Int("message_length", len(message)))

	if err := w.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	err := retry.WithPolicy(ctx, w.retryPolicy, func() error {
		return w.post(ctx, message)
	})
	if err != nil {
		slog.Error("webhook delivery failed",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return err
	}

	slog.Info("webhook delivery succeeded",
		slog.String("request_id", requestID))
	return nil
}

// post performs a single POST to the webhook URL without retry.
func (w *WebhookNotifier) post(ctx context.Context, message string) error {
	payload, err := json.Marshal(webhookPayload{
		EventName: w.config.EventName,
		Message:   message,
		Status:    w.config.Status,
		Username:  w.config.Username,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{StatusCode: resp.StatusCode, Message: string(body)}
	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode, Message: string(body)}
	default:
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
}
