// Package apperr defines the error kinds surfaced by the ingestion pipeline
// and the report runner.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure. Kinds are comparable with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// ErrConnection means the database could not be opened.
	ErrConnection Kind = "connection error"
	// ErrTransport means the catalog API request failed or returned something unusable.
	ErrTransport Kind = "transport error"
	// ErrConstraint means a batch insert violated a non-duplicate constraint.
	ErrConstraint Kind = "constraint violation"
	// ErrValidation means the caller supplied an invalid argument.
	ErrValidation Kind = "validation error"
)

// Error carries a Kind, the operation that failed and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New wraps err with a kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Invalid builds a validation error from a formatted message.
func Invalid(op, format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind carried by err, or "" when err has none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
