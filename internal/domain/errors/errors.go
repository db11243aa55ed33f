package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind groups error codes into the families clients react to.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindRateLimit  Kind = "rate_limit"
	KindStorage    Kind = "storage"
	KindUpstream   Kind = "upstream"
	KindInternal   Kind = "internal"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	Kind() Kind        // Error family
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Stable machine-readable code, e.g. "INVALID_EMAIL"
	Message() string   // Human readable message safe to return to clients
	Details() string   // Internal detail, never serialized
}

// BaseError is the value type behind every predefined AppError.
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

func (e *BaseError) Kind() Kind        { return e.kind }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// Is matches on error code so a copy produced by WithDetails still
// satisfies errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WithDetails returns a copy carrying internal detail.
func (e *BaseError) WithDetails(details string) *BaseError {
	cp := *e
	cp.details = details

	return &cp
}

// WithMessage returns a copy with a more specific client message.
func (e *BaseError) WithMessage(message string) *BaseError {
	cp := *e
	cp.message = message

	return &cp
}

// Authentication errors.
var (
	ErrMissingToken = NewBaseError(KindAuth, http.StatusBadRequest,
		"MISSING_TOKEN", "ID token is required")
	ErrInvalidToken = NewBaseError(KindAuth, http.StatusUnauthorized,
		"INVALID_TOKEN", "Invalid or expired ID token")
	ErrNoSession = NewBaseError(KindAuth, http.StatusUnauthorized,
		"NO_SESSION", "Authentication required")
	ErrInvalidSession = NewBaseError(KindAuth, http.StatusUnauthorized,
		"INVALID_SESSION", "Session is invalid or expired")
)

// Validation errors.
var (
	ErrInvalidEmail = NewBaseError(KindValidation, http.StatusBadRequest,
		"INVALID_EMAIL", "Please enter a valid email address")
	ErrHoneypotTriggered = NewBaseError(KindValidation, http.StatusBadRequest,
		"HONEYPOT_TRIGGERED", "Invalid submission")
	ErrMissingUserAgent = NewBaseError(KindValidation, http.StatusBadRequest,
		"MISSING_USER_AGENT", "Invalid request")
	ErrBlockedUserAgent = NewBaseError(KindValidation, http.StatusBadRequest,
		"BLOCKED_USER_AGENT", "Automated requests are not allowed")
	ErrInvalidInput = NewBaseError(KindValidation, http.StatusBadRequest,
		"INVALID_INPUT", "Invalid request body")
	ErrInvalidMessages = NewBaseError(KindValidation, http.StatusBadRequest,
		"INVALID_MESSAGES", "Invalid chat messages")
	ErrInvalidFile = NewBaseError(KindValidation, http.StatusBadRequest,
		"INVALID_FILE", "Invalid file upload")
)

// Lookup, throttling and dependency errors.
var (
	ErrUserNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"USER_NOT_FOUND", "User profile not found")
	ErrNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"NOT_FOUND", "Resource not found")
	ErrRateLimited = NewBaseError(KindRateLimit, http.StatusTooManyRequests,
		"RATE_LIMITED", "Too many requests, please try again later")
	ErrChatUnavailable = NewBaseError(KindUpstream, http.StatusServiceUnavailable,
		"CHAT_UNAVAILABLE", "Chat assistant is not configured")
	ErrChatUpstream = NewBaseError(KindUpstream, http.StatusBadGateway,
		"CHAT_UPSTREAM_ERROR", "Chat assistant is temporarily unavailable")
	ErrInternalError = NewBaseError(KindInternal, http.StatusInternalServerError,
		"INTERNAL_ERROR", "Internal server error")
)

// StorageError wraps a persistence failure. The cause is kept for logs only.
type StorageError struct {
	err     error
	details string
}

// NewStorageError creates a storage-related error.
func NewStorageError(err error, details string) AppError {
	return &StorageError{
		err:     err,
		details: details,
	}
}

func (e *StorageError) Error() string {
	if e.err == nil {
		return "storage operation failed: " + e.details
	}

	return errors.Wrap(e.err, "storage operation failed: "+e.details).Error()
}

func (e *StorageError) Unwrap() error     { return e.err }
func (e *StorageError) Kind() Kind        { return KindStorage }
func (e *StorageError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *StorageError) ErrorCode() string { return "STORAGE_ERROR" }
func (e *StorageError) Message() string   { return "Failed to save data" }
func (e *StorageError) Details() string   { return e.details }
