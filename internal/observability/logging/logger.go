// Package logging provides structured logging using the standard library's
// log/slog package, configured once at startup.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a structured logger with JSON output. The level comes
// from the LOG_LEVEL environment variable (debug, info, warn, error) and
// defaults to info. Warn and error records carry the source location.
func NewLogger() *slog.Logger {
	level := levelFromEnv()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	})

	return slog.New(handler)
}

// NewTextLogger creates a logger with human-readable text output for local
// development.
func NewTextLogger() *slog.Logger {
	level := levelFromEnv()

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	})

	return slog.New(handler)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
