// Package retry provides bounded retry with exponential backoff for fallible
// operations. Call sites supply a predicate deciding which failures are worth
// retrying; everything else propagates immediately without consuming attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"syscall"
	"time"
)

// Policy holds the configuration for one retried operation.
// A Policy is supplied per call site and never shared mutably.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first (>= 1).
	MaxAttempts int

	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration

	// BackoffFactor is the exponential growth factor applied to the delay
	// after each failed attempt. Values below 1 are treated as 1.
	BackoffFactor float64

	// MaxDelay caps the computed backoff delay. Zero means uncapped.
	MaxDelay time.Duration

	// ShouldRetry decides whether a failure is worth another attempt.
	// A nil predicate retries every error.
	ShouldRetry func(error) bool
}

// NetworkPolicy returns the retry policy shared by feed fetching and
// notification delivery: 3 attempts, 1s initial delay, doubling backoff,
// retrying only transient network failures.
func NetworkPolicy() Policy {
	return Policy{
		MaxAttempts:   3,
		InitialDelay:  1 * time.Second,
		BackoffFactor: 2.0,
		ShouldRetry:   IsTransient,
	}
}

// ExhaustedError is the terminal error returned when an operation gives up,
// either because all attempts were consumed or because the policy's
// ShouldRetry predicate rejected the failure. It wraps the last underlying
// error so errors.Is/As reach the cause.
type ExhaustedError struct {
	// Attempts is the number of attempts actually made.
	Attempts int

	// Err is the last underlying error.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry gave up after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// WithPolicy executes fn with retry according to p.
// It returns nil as soon as fn succeeds. On failure it returns an
// *ExhaustedError wrapping the attempt count and the last cause.
// Backoff waits are cancellable through ctx; cancellation during a wait is
// terminal and wraps ctx.Err().
func WithPolicy(ctx context.Context, p Policy, fn func() error) error {
	shouldRetry := p.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = func(error) bool { return true }
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn()

		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		// Terminal: attempts consumed, or the failure is not retryable.
		if attempt >= p.MaxAttempts || !shouldRetry(lastErr) {
			return &ExhaustedError{Attempts: attempt, Err: lastErr}
		}

		delay := backoffDelay(p, attempt)
		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return &ExhaustedError{Attempts: attempt, Err: ctx.Err()}
		}
	}

	return &ExhaustedError{Attempts: p.MaxAttempts, Err: lastErr}
}

// backoffDelay computes InitialDelay × BackoffFactor^(attempt−1), capped at
// MaxDelay when set. attempt is the 1-indexed attempt that just failed.
func backoffDelay(p Policy, attempt int) time.Duration {
	factor := p.BackoffFactor
	if factor < 1 {
		factor = 1
	}

	delay := time.Duration(float64(p.InitialDelay) * math.Pow(factor, float64(attempt-1)))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// IsTransient reports whether an error represents a transient network
// failure: connection reset/refused, timeout, or an HTTP 5xx response.
// Client errors (4xx), parse errors, and validation errors are not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 && httpErr.StatusCode < 600
	}

	return false
}

// HTTPError represents an HTTP response treated as an error, carrying the
// status code so retry predicates can classify it.
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
