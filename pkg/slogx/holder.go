package slogx

import (
	"context"
	"log/slog"
)

type holderKey struct{}

type loggerHolder struct {
	logger *slog.Logger
}

func withHolder(ctx context.Context, h *loggerHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// Enrich extends the request logger with args. Unlike With it also updates
// the logger used for the access log line written by HTTPMiddleware.
func Enrich(ctx context.Context, args ...any) context.Context {
	logger := FromContext(ctx).With(args...)
	if h, ok := ctx.Value(holderKey{}).(*loggerHolder); ok {
		h.logger = logger
	}
	return WithContext(ctx, logger)
}
