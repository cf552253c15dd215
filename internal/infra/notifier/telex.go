package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/resilience/retry"
)

// TelexConfig contains configuration for direct Telex channel delivery.
type TelexConfig struct {
	// Enabled indicates whether channel delivery is enabled
	Enabled bool

	// APIBase is the base URL of the Telex channel API
	// (e.g. "https://api.staging.telex.im/api/v1")
	APIBase string

	// ChannelID is the destination channel identifier
	ChannelID string

	// Token is the bearer token used for authorization
	Token string

	// Timeout is the HTTP request timeout for API calls
	Timeout time.Duration
}

// TelexNotifier posts messages to a Telex channel via
// POST <APIBase>/<ChannelID>/messages with bearer-token authorization.
type TelexNotifier struct {
	config      TelexConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
	retryPolicy retry.Policy
}

// NewTelexNotifier creates a TelexNotifier with the shared network retry
// policy and a 1 req/s rate limiter.
func NewTelexNotifier(config TelexConfig) *TelexNotifier {
	policy := retry.NetworkPolicy()
	policy.ShouldRetry = isRetryable

	return &TelexNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
		retryPolicy: policy,
	}
}

// telexMessagePayload is the JSON body posted to the channel messages endpoint.
type telexMessagePayload struct {
	Text string `json:"text"`
}

// Notify implements the Notifier interface.
func (t *TelexNotifier) Notify(ctx context.Context, message string) error {
	if message == "" {
		return ErrEmptyMessage
	}

	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("sending message to telex channel",
		slog.String("request_id", requestID),
		slog.String("channel_id", t.config.ChannelID),
		slog.Int("message_length", len(message)))

	if err := t.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	err := retry.WithPolicy(ctx, t.retryPolicy, func() error {
		return t.post(ctx, message)
	})
	if err != nil {
		slog.Error("telex delivery failed",
			slog.String("request_id", requestID),
			slog.String("channel_id", t.config.ChannelID),
			slog.Any("error", err))
		return err
	}

	slog.Info("telex delivery succeeded",
		slog.String("request_id", requestID),
		slog.String("channel_id", t.config.ChannelID))
	return nil
}

// post performs a single POST to the channel messages endpoint without retry.
func (t *TelexNotifier) post(ctx context.Context, message string) error {
	payload, err := json.Marshal(telexMessagePayload{Text: message})
	if err != nil {
		return fmt.Errorf("marshal message payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages",
		strings.TrimRight(t.config.APIBase, "/"), t.config.ChannelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The response body is the acknowledgement; consume it so the
	// connection can be reused.
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
