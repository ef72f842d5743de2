// Package apperrors defines the error taxonomy shared by services, middleware and handlers.
//
// Every error that should reach a client with a specific HTTP status is an *Error.
// Anything else is treated as internal and its details are never exposed.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthRequired
	KindInvalidToken
	KindUserNotFound
	KindForbidden
	KindNotFound
	KindConflict
	KindBadRequest
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthRequired:
		return "auth_required"
	case KindInvalidToken:
		return "invalid_token"
	case KindUserNotFound:
		return "user_not_found"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// FieldError describes a single failing input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an application error with a client-safe message
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel errors of the authentication pipeline. Compare with errors.Is.
var (
	ErrAuthRequired       = New(KindAuthRequired, "Authentication required")
	ErrInvalidToken       = New(KindInvalidToken, "Invalid token")
	ErrUserNotFound       = New(KindUserNotFound, "User not found")
	ErrInvalidCredentials = New(KindBadRequest, "Invalid credentials")
)

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind that keeps err as its cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a validation error listing every failing field
func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation error", Fields: fields}
}

// Forbidden creates an error for an authenticated caller lacking privilege
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// NotFound creates an error for a missing resource
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Conflict creates an error for a uniqueness violation
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// BadRequest creates an error for a request that cannot be processed as sent
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Internal wraps an unexpected failure
func Internal(err error) *Error {
	return Wrap(KindInternal, "Internal server error", err)
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Status maps a kind to its HTTP status code
func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict, KindBadRequest:
		return http.StatusBadRequest
	case KindAuthRequired, KindInvalidToken, KindUserNotFound:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
