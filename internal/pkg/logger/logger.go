// Package logger provides structured logging for the OpsSight client.
// No tokens or secrets are logged; cluster_id and subscription_id enable
// correlation with backend logs.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a slog.Logger at the given level. JSON when LOG_JSON=1,
// human-readable text otherwise.
func New(level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if os.Getenv("LOG_JSON") == "1" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
