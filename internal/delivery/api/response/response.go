// Package response renders the JSON envelopes returned by the API.
package response

import (
	"net/http"

	domainerrors "skatehubba/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`   // Machine-readable error code, e.g. "INVALID_EMAIL"
	Message string `json:"message"` // User-friendly error message
}

// OKResponse is the minimal success body.
type OKResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Success writes body as-is with the given status.
func Success(c echo.Context, statusCode int, body any) error {
	return c.JSON(statusCode, body)
}

// OK writes {ok: true, message}.
func OK(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, OKResponse{OK: true, Message: message})
}

// Error writes {ok: false, error, message}.
func Error(c echo.Context, statusCode int, errorCode, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		OK:      false,
		Error:   errorCode,
		Message: message,
	})
}

// AppError renders a domain error. Details never leave the server.
func AppError(c echo.Context, err domainerrors.AppError) error {
	return Error(c, err.HTTPCode(), err.ErrorCode(), err.Message())
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return AppError(c, domainerrors.ErrInternalError)
}
