package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized covers bad credentials, unverified accounts and unusable tokens.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates a request that would break a state transition rule.
var ErrConflict = errors.New("state conflict")

// ErrUpstream indicates a datastore or email dispatch failure surfaced to the caller.
var ErrUpstream = errors.New("upstream failure")

// ErrSigning indicates that a token could not be signed.
var ErrSigning = errors.New("token signing failed")

// Token and login failures. All of them classify as ErrUnauthorized for callers,
// the specific error is kept for logs.
var (
	ErrInvalidSignature   = fmt.Errorf("%w: invalid token signature", ErrUnauthorized)
	ErrTokenNotFound      = fmt.Errorf("%w: token not found or blacklisted", ErrUnauthorized)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrAccountNotVerified = fmt.Errorf("%w: account email not verified", ErrUnauthorized)
)

// AppError carries an HTTP status code and a client-safe message alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus classifies err into the HTTP status code the API should answer with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that is safe to show to API clients.
// Unauthorized failures collapse into one message so token and login details stay in logs.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrAccountNotVerified):
		return "account email not verified"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return err.Error()
	case errors.Is(err, ErrNotFound):
		return "resource not found"
	case errors.Is(err, ErrUpstream):
		return "upstream service unavailable"
	default:
		return "internal server error"
	}
}
