package log

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// IntoContext stores a logger in ctx.
func IntoContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a logger from ctx, falling back to the default slog
// logger.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok && logger != nil {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// FromContextOr extracts a logger from ctx, or returns fallback.
func FromContextOr(ctx context.Context, fallback *Logger) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok && logger != nil {
		return logger
	}
	return fallback
}
