package contextx

import (
	"context"
	"fmt"
	"log/slog"
)

type contextKeyLogger struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger{}, logger)
}

func LoggerFromContext(ctx context.Context) (*slog.Logger, error) {
	if logger, ok := ctx.Value(contextKeyLogger{}).(*slog.Logger); ok && logger != nil {
		return logger, nil
	}

	return nil, fmt.Errorf("logger: %w", ErrNoValue)
}

// LoggerFromContextOrDefault falls back to slog.Default().
func LoggerFromContextOrDefault(ctx context.Context) *slog.Logger {
	if logger, err := LoggerFromContext(ctx); err == nil {
		return logger
	}

	return slog.Default()
}

// WithLogAttrs stores a logger that adds attrs to every record made through ctx.
func WithLogAttrs(ctx context.Context, attrs ...any) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	return WithLogger(ctx, LoggerFromContextOrDefault(ctx).With(attrs...))
}
