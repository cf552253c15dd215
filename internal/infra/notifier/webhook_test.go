package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestWebhookNotifier(url string) *WebhookNotifier {
	n := NewWebhookNotifier(WebhookConfig{
		Enabled:    true,
		WebhookURL: url,
		Timeout:    5 * time.Second,
	})
	n.retryPolicy = fastRetry()
	n.rateLimiter = NewRateLimiter(1000, 1000)
	return n
}

func TestWebhookNotify_PayloadShape(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := newTestWebhookNotifier(srv.URL)
	if err := n.Notify(context.Background(), "🔒 Cybersecurity: breach"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if gotAuth != "" {
		t.Errorf("webhook delivery must not carry an Authorization header, got %q", gotAuth)
	}

	want := map[string]string{
		"event_name": "rss_update",
		"message":    "🔒 Cybersecurity: breach",
		"status":     "success",
		"username":   "collins",
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("payload field %q = %q, want %q", k, gotBody[k], v)
		}
	}
}

func TestWebhookNotify_CustomMetadataFields(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(WebhookConfig{
		Enabled:    true,
		WebhookURL: srv.URL,
		EventName:  "feed_digest",
		Status:     "info",
		Username:   "feedbot",
		Timeout:    5 * time.Second,
	})
	n.rateLimiter = NewRateLimiter(1000, 1000)

	if err := n.Notify(context.Background(), "msg"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotBody["event_name"] != "feed_digest" || gotBody["status"] != "info" || gotBody["username"] != "feedbot" {
		t.Errorf("custom metadata not applied: %v", gotBody)
	}
}

func TestWebhookNotify_EmptyMessageFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	n := newTestWebhookNotifier(srv.URL)
	if err := n.Notify(context.Background(), ""); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("expected zero HTTP requests, got %d", got)
	}
}

func TestWebhookNotify_ServerErrorRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := newTestWebhookNotifier(srv.URL)
	err := n.Notify(context.Background(), "msg")

	if err == nil {
		t.Fatal("expected error after retries, got nil")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestNoOpNotifier(t *testing.T) {
	n := NewNoOpNotifier()
	if err := n.Notify(context.Background(), "anything"); err != nil {
		t.Errorf("noop notifier should never fail, got %v", err)
	}
}
