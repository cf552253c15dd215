package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lekakenycollins8/telex-integration-rss-feed-to-telex-channel/internal/pkg/config"
)

// Config holds the operational settings of the polling worker: how often a
// cycle fires, how long it may run, how deliveries are paced, and where the
// status HTTP server listens.
type Config struct {
	// UpdateInterval is the gap between scheduled cycles.
	// Loaded from UPDATE_INTERVAL as a plain millisecond count.
	// Default: 30 minutes.
	UpdateInterval time.Duration

	// CycleTimeout bounds one fetch-and-deliver cycle.
	// Loaded from CYCLE_TIMEOUT as a Go duration string. Default: 10 minutes.
	CycleTimeout time.Duration

	// MessageSpacing is the minimum gap between consecutive deliveries
	// within a cycle. Loaded from MESSAGE_SPACING. Default: 1 second.
	MessageSpacing time.Duration

	// StatusPort is the port of the status HTTP server (health, tick,
	// descriptor, metrics). Loaded from STATUS_PORT. Default: 9091.
	StatusPort int
}

// DefaultConfig returns the worker settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		UpdateInterval: 30 * time.Minute,
		CycleTimeout:   10 * time.Minute,
		MessageSpacing: 1 * time.Second,
		StatusPort:     9091,
	}
}

// Validate checks every field, collecting all violations into one error.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateDuration(c.UpdateInterval, 10*time.Second, 24*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("update interval: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.CycleTimeout); err != nil {
		errs = append(errs, fmt.Errorf("cycle timeout: %w", err))
	}
	if c.MessageSpacing < 0 {
		errs = append(errs, fmt.Errorf("message spacing: must not be negative"))
	}
	if err := config.ValidateIntRange(c.StatusPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("status port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("worker config validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from environment
// variables, falling back to defaults field by field when a value is absent
// or invalid. It always returns a usable configuration; bad values surface
// as warnings, never as startup failures.
func LoadConfigFromEnv(logger *slog.Logger) Config {
	cfg := DefaultConfig()

	load := func(field string, result config.LoadResult) config.LoadResult {
		if result.FallbackApplied {
			for _, warning := range result.Warnings {
				logger.Warn("configuration fallback applied",
					slog.String("field", field),
					slog.String("warning", warning))
			}
		}
		return result
	}

	cfg.UpdateInterval = load("update_interval",
		config.LoadEnvMillis("UPDATE_INTERVAL", cfg.UpdateInterval, func(d time.Duration) error {
			return config.ValidateDuration(d, 10*time.Second, 24*time.Hour)
		})).Value.(time.Duration)

	cfg.CycleTimeout = load("cycle_timeout",
		config.LoadEnvDuration("CYCLE_TIMEOUT", cfg.CycleTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, 30*time.Second, 1*time.Hour)
		})).Value.(time.Duration)

	cfg.MessageSpacing = load("message_spacing",
		config.LoadEnvDuration("MESSAGE_SPACING", cfg.MessageSpacing, func(d time.Duration) error {
			return config.ValidateDuration(d, 0, 30*time.Second)
		})).Value.(time.Duration)

	cfg.StatusPort = load("status_port",
		config.LoadEnvInt("STATUS_PORT", cfg.StatusPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		})).Value.(int)

	return cfg
}
