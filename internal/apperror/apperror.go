// Package apperror classifies handler failures into a small set of kinds and
// maps each kind to exactly one HTTP status.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindConflict
	KindNotFound
)

var statusByKind = map[Kind]int{
	KindInternal: http.StatusInternalServerError,
	KindInvalid:  http.StatusBadRequest,
	KindConflict: http.StatusBadRequest,
	KindNotFound: http.StatusNotFound,
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a classified failure. Message is safe to show to the caller; Err
// carries the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// As extracts an *Error from err. Unclassified errors are wrapped with the
// given fallback kind and message.
func As(err error, fallback Kind, message string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(fallback, message, err)
}
