package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for API responses. Every kind maps to exactly one
// HTTP status.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindUnauthorized   Kind = "unauthorized"
	KindMalformedInput Kind = "malformed_input"
	KindExpired        Kind = "expired"
	KindInvalidToken   Kind = "invalid_token"
	KindStorage        Kind = "storage"
	KindPrecondition   Kind = "precondition"
	KindConflict       Kind = "conflict"
	KindOutOfRange     Kind = "out_of_range"
	KindInternal       Kind = "internal"
)

// Error is a classified error. Message is safe to return to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code handlers should respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindMalformedInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	case KindExpired, KindInvalidToken:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindPrecondition, KindOutOfRange:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Unclassified errors get
// a generic message so internals do not leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
