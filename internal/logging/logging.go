// Package logging builds the structured logger shared by every command and
// service in lexisearch.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a slog.Logger writing text-formatted records to stderr at the
// given level ("debug", "info", "warn", "error"; unrecognized values fall
// back to "info").
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
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
