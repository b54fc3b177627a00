// Package errors defines the tagged error variants handlers map to HTTP
// status codes.
package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for status mapping and logging.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindStore      Kind = "store"
)

// Error carries a kind, the HTTP status to respond with, and a message safe
// to show to clients.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Validation builds a 400 error for missing or invalid input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

// ValidationWithStatus builds a validation error with a non-default status.
// Login reports missing credentials as 404, matching the public API contract.
func ValidationWithStatus(status int, message string) *Error {
	return &Error{Kind: KindValidation, Status: status, Message: message}
}

// Auth builds a 401 error for bad credentials.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: message}
}

// NotFound builds a 404 error for a missing record.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// Conflict builds a 409 error, e.g. duplicate email on signup.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: message}
}

// Store wraps an unexpected persistence failure as a 500.
func Store(cause error) *Error {
	return &Error{Kind: KindStore, Status: http.StatusInternalServerError, Message: "internal error", cause: cause}
}

// StatusOf returns the HTTP status for err, or 500 when err is not tagged.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err is a tagged error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
