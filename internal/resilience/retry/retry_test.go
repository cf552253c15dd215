package retry

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func fastPolicy(shouldRetry func(error) bool) Policy {
	return Policy{
		MaxAttempts:   3,
		InitialDelay:  10 * time.Millisecond,
		BackoffFactor: 2.0,
		ShouldRetry:   shouldRetry,
	}
}

func TestWithPolicy_SuccessFirstAttempt(t *testing.T) {
	attempts := 0
	err := WithPolicy(context.Background(), fastPolicy(nil), func() error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithPolicy_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	err := WithPolicy(context.Background(), fastPolicy(nil), func() error {
		attempts++
		if attempts < 3 {
			return &HTTPError{StatusCode: 500, Message: "Server Error"}
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithPolicy_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	underlying := &HTTPError{StatusCode: 503, Message: "Service Unavailable"}
	err := WithPolicy(context.Background(), fastPolicy(IsTransient), func() error {
		attempts++
		return underlying
	})

	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", attempts)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ExhaustedError, got %T: %v", err, err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("expected attempt count 3, got %d", exhausted.Attempts)
	}
	if !errors.Is(err, underlying) {
		t.Error("expected wrapped error to contain the underlying cause")
	}
}

func TestWithPolicy_ShortCircuitOnPredicate(t *testing.T) {
	attempts := 0
	underlying := &HTTPError{StatusCode: 400, Message: "Bad Request"}
	err := WithPolicy(context.Background(), fastPolicy(IsTransient), func() error {
		attempts++
		return underlying
	})

	if attempts != 1 {
		t.Fatalf("expected exactly 1 attempt for non-retryable error, got %d", attempts)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ExhaustedError, got %T", err)
	}
	if exhausted.Attempts != 1 {
		t.Errorf("expected attempt count 1, got %d", exhausted.Attempts)
	}
	if !errors.Is(err, underlying) {
		t.Error("expected wrapped error to contain the underlying cause")
	}
}

func TestWithPolicy_NilPredicateRetriesAnyError(t *testing.T) {
	attempts := 0
	err := WithPolicy(context.Background(), fastPolicy(nil), func() error {
		attempts++
		return errors.New("parse failure")
	})

	if attempts != 3 {
		t.Errorf("expected 3 attempts with default predicate, got %d", attempts)
	}
	if err == nil {
		t.Error("expected error, got nil")
	}
}

func TestWithPolicy_BackoffTiming(t *testing.T) {
	p := Policy{
		MaxAttempts:   3,
		InitialDelay:  20 * time.Millisecond,
		BackoffFactor: 2.0,
	}

	// Two waits: 20ms after attempt 1, 40ms after attempt 2.
	start := time.Now()
	_ = WithPolicy(context.Background(), p, func() error {
		return errors.New("always fails")
	})
	elapsed := time.Since(start)

	if elapsed < 60*time.Millisecond {
		t.Errorf("expected at least 60ms of backoff, got %v", elapsed)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("backoff took unexpectedly long: %v", elapsed)
	}
}

func TestWithPolicy_MaxDelayCap(t *testing.T) {
	p := Policy{
		MaxAttempts:   4,
		InitialDelay:  10 * time.Millisecond,
		BackoffFactor: 10.0,
		MaxDelay:      15 * time.Millisecond,
	}

	start := time.Now()
	_ = WithPolicy(context.Background(), p, func() error {
		return errors.New("always fails")
	})
	elapsed := time.Since(start)

	// Uncapped the waits would be 10ms + 100ms + 1s.
	if elapsed > 300*time.Millisecond {
		t.Errorf("expected capped backoff, got %v", elapsed)
	}
}

func TestWithPolicy_ContextCancelDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := Policy{
		MaxAttempts:   5,
		InitialDelay:  time.Minute,
		BackoffFactor: 2.0,
	}

	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- WithPolicy(ctx, p, func() error {
			attempts++
			return errors.New("fail")
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled in chain, got %v", err)
		}
		if attempts != 1 {
			t.Errorf("expected 1 attempt before cancellation, got %d", attempts)
		}
	case <-time.After(time.Second):
		t.Fatal("WithPolicy did not return after context cancellation")
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection reset", syscall.ECONNRESET, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"timed out", syscall.ETIMEDOUT, true},
		{"http 500", &HTTPError{StatusCode: 500}, true},
		{"http 503", &HTTPError{StatusCode: 503}, true},
		{"http 404", &HTTPError{StatusCode: 404}, false},
		{"http 429", &HTTPError{StatusCode: 429}, false},
		{"plain error", errors.New("parse failure"), false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
