// Package logger provides structured logging for the application using the
// standard library's log/slog package, plus helpers for carrying a
// request-scoped logger through a context.Context.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/trackerworkflow/tracker-api/internal/config"
)

// contextKey is an unexported type for context keys defined in this package.
type contextKey struct{}

// loggerKey is the context key under which a request-scoped logger travels.
var loggerKey = contextKey{}

// Setup initializes the application's logging system from the server
// configuration. It creates a JSON logger at the configured level, installs
// it as the process-wide default, and returns it.
func Setup(cfg config.ServerConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

// WithLogger returns a copy of ctx carrying the given logger. Middleware
// uses this to attach request-scoped attributes (trace ID) once and have
// them appear on every log line downstream.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger carried by ctx, or the process default
// when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger carried by ctx, falling back to
// the provided component logger rather than the process default. Stores use
// this so their component attribute survives when the context carries no
// logger.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
