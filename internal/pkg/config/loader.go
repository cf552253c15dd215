// Package config provides reusable environment variable loaders with a
// fail-open strategy: a missing variable silently uses the default, while an
// unparseable or invalid value falls back to the default with a warning. The
// worker never refuses to start over a bad tuning knob.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading one configuration value. Value holds
// the effective value, which is the default whenever FallbackApplied is true.
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

func fallback(envKey, raw string, reason error, defaultValue interface{}) LoadResult {
	return LoadResult{
		Value:           defaultValue,
		Warnings:        []string{fmt.Sprintf("invalid %s=%q: %v, falling back to default '%v'", envKey, raw, reason, defaultValue)},
		FallbackApplied: true,
	}
}

// LoadEnvString reads a string variable with no validation.
// An unset or empty variable yields the default.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback reads a string variable and validates it. A nil
// validator accepts anything.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return LoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(envKey, value, err, defaultValue)
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvInt reads an integer variable and validates it.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback(envKey, raw, fmt.Errorf("not an integer"), defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(envKey, raw, err, defaultValue)
		}
	}

	return LoadResult{Value: parsed}
}

// LoadEnvDuration reads a Go duration string ("30s", "5m", "1h30m") and
// validates the parsed duration.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback(envKey, raw, fmt.Errorf("not a duration"), defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(envKey, raw, err, defaultValue)
		}
	}

	return LoadResult{Value: parsed}
}

// LoadEnvMillis reads an integer number of milliseconds and returns it as a
// time.Duration. Some deployment surfaces hand intervals over as plain
// millisecond counts rather than Go duration strings.
func LoadEnvMillis(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback(envKey, raw, fmt.Errorf("not a millisecond count"), defaultValue)
	}
	parsed := time.Duration(millis) * time.Millisecond

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(envKey, raw, err, defaultValue)
		}
	}

	return LoadResult{Value: parsed}
}

// LoadEnvBool reads a boolean variable accepting strconv.ParseBool forms
// ("1", "t", "true", "0", "f", "false", case-insensitive).
func LoadEnvBool(envKey string, defaultValue bool) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback(envKey, raw, fmt.Errorf("not a boolean"), defaultValue)
	}

	return LoadResult{Value: parsed}
}
