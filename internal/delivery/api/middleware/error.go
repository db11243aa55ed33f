package middleware

import (
	"log/slog"
	"net/http"

	"skatehubba/internal/delivery/api/response"
	deliverycontext "skatehubba/internal/delivery/context"
	domainerrors "skatehubba/internal/domain/errors"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware renders every handler error as {ok: false, error, message}.
type ErrorMiddleware struct {
	logger *slog.Logger
	hub    *sentry.Hub
}

// NewErrorMiddleware creates the error handler. hub may be nil.
func NewErrorMiddleware(logger *slog.Logger, hub *sentry.Hub) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		hub:    hub,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.String("error_code", appErr.ErrorCode()),
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
			)
			m.report(c, err)
		} else if appErr.Details() != "" {
			logger.Debug("Request rejected",
				slog.String("error_code", appErr.ErrorCode()),
				slog.String("details", appErr.Details()),
			)
		}

		_ = response.AppError(c, appErr)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, httpErrorCode(httpErr.Code), message)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
	m.report(c, err)

	_ = response.InternalServerError(c)
}

func (m *ErrorMiddleware) report(c echo.Context, err error) {
	if m.hub == nil {
		return
	}

	hub := m.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request())
		scope.SetTag("request_id", deliverycontext.GetRequestID(c))
		if uid, ok := deliverycontext.GetUID(c); ok {
			scope.SetUser(sentry.User{ID: uid})
		}
	})
	hub.CaptureException(err)
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return domainerrors.ErrNotFound.ErrorCode()
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return domainerrors.ErrRateLimited.ErrorCode()
	default:
		return "HTTP_ERROR"
	}
}
