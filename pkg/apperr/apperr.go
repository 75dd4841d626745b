// Package apperr defines the error classes shared by all domain services.
// Handlers translate them to HTTP status codes in one place instead of
// string-matching service errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindValidation marks input the caller can correct immediately.
	KindValidation Kind = iota
	// KindConflict marks state races, e.g. a slot taken between read and write.
	KindConflict
	// KindNotFound marks a missing entity.
	KindNotFound
	// KindUnauthorized marks failed authentication or missing consent.
	KindUnauthorized
)

// Error carries a kind alongside the message. The message is safe to show
// to end users.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a validation error.
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a conflict error.
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an unauthorized error.
func Unauthorized(format string, args ...interface{}) error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or KindValidation, false when err is not
// an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindValidation, false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { k, ok := KindOf(err); return ok && k == KindValidation }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { k, ok := KindOf(err); return ok && k == KindConflict }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { k, ok := KindOf(err); return ok && k == KindNotFound }

// IsUnauthorized reports whether err is an unauthorized error.
func IsUnauthorized(err error) bool { k, ok := KindOf(err); return ok && k == KindUnauthorized }

// HTTPStatus maps an error to the HTTP status handlers should respond with.
// Unclassified errors are internal server errors.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
