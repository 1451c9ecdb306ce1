// Package apierror provides the standardized error model for the API.
// All errors returned to clients go through this package to ensure a stable
// machine-readable kind plus a human-readable message, and to prevent leaking
// internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Kind is the machine-readable error classification.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindUnavailable     Kind = "unavailable"
)

// Error is the canonical error envelope for all 4xx/5xx HTTP responses.
type Error struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Detail }

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func InvalidInput(detail string) *Error    { return New(KindInvalidInput, detail) }
func Unauthenticated(detail string) *Error { return New(KindUnauthenticated, detail) }
func Forbidden(detail string) *Error       { return New(KindForbidden, detail) }
func Conflict(detail string) *Error        { return New(KindConflict, detail) }
func NotFound(detail string) *Error        { return New(KindNotFound, detail) }
func InvalidState(detail string) *Error    { return New(KindInvalidState, detail) }
func Unavailable(detail string) *Error     { return New(KindUnavailable, detail) }

// ErrInvalidCredentials is the single login failure returned for wrong
// password, unknown user, and non-active accounts alike. Never branch on
// account status when building a login error response.
var ErrInvalidCredentials = Unauthenticated("invalid username or password")

// Status maps an error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidInput, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// From extracts the *Error from err, or wraps unknown errors as an opaque
// unavailable error so internals never reach clients.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Unavailable("internal server error")
}

// KindOf reports the kind of err, or KindUnavailable for unknown errors.
func KindOf(err error) Kind { return From(err).Kind }

// ValidationError wraps multiple field errors (422 responses).
type ValidationError struct {
	Kind   Kind              `json:"kind"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Kind: KindInvalidInput, Detail: "validation failed", Fields: fields}
}
