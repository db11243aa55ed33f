// Package context carries request-scoped values between middleware,
// handlers and use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	// KeyUID holds the session subject set by the session guard.
	KeyUID ContextKey = "uid"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID reads the request ID from echo.Context, generating one if absent.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" when no request ID is present.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault falls back to the given logger outside a request.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetUID records the authenticated uid on both the echo context and the
// request context, so use cases can read it without echo.
func SetUID(c echo.Context, uid string) {
	c.Set(string(KeyUID), uid)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), KeyUID, uid)))
}

// GetUID returns the authenticated uid from echo.Context.
func GetUID(c echo.Context) (string, bool) {
	uid, ok := c.Get(string(KeyUID)).(string)

	return uid, ok && uid != ""
}

// UIDFromContext returns the authenticated uid from context.Context.
func UIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(KeyUID).(string)

	return uid, ok && uid != ""
}
