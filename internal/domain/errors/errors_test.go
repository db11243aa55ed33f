package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	err := ErrInvalidEmail.WithDetails("missing @")

	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.NotErrorIs(t, err, ErrHoneypotTriggered)
	assert.Equal(t, "Please enter a valid email address: missing @", err.Error())
	assert.Equal(t, "Please enter a valid email address", err.Message())
	assert.Empty(t, ErrInvalidEmail.Details())
}

func TestBaseError_WrappedIsFound(t *testing.T) {
	wrapped := errors.Wrap(ErrRateLimited, "signup")

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPCode())
	assert.Equal(t, KindRateLimit, appErr.Kind())
	assert.Equal(t, "RATE_LIMITED", appErr.ErrorCode())
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError(cause, "insert signup")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "STORAGE_ERROR", err.ErrorCode())
	assert.Equal(t, KindStorage, err.Kind())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
