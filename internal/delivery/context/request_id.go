// Package context carries per-request values (correlation ID, scoped
// logger, authenticated principal) between the delivery layer and the
// services below it.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// ContextKey types the keys this package stores, so other packages
// cannot collide with them.
type ContextKey string

const (
	// KeyRequestID stores the correlation ID of the current request.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger stores the request-scoped logger.
	KeyLogger ContextKey = "logger"

	// HeaderXRequestID carries the correlation ID to and from clients.
	HeaderXRequestID = "X-Request-Id"
)

// SetRequestID records the correlation ID on the echo context so
// handlers can echo it back.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// WithRequestID returns a context carrying the correlation ID for code
// below the delivery layer.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestID returns the correlation ID carried in the context, or ""
// when the request never passed the request ID middleware.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithLogger returns a context carrying the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, falling back to
// the given logger for code paths that run outside a request (startup,
// background monitors, tests).
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
