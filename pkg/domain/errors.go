package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies store failures.
type ErrorKind string

// Failure kinds surfaced by store operations.
const (
	KindInvalidArgument   ErrorKind = "invalid_argument"
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindResourceExhausted ErrorKind = "resource_exhausted"
)

// Sentinels for errors.Is comparisons. Matching is by kind only.
var (
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrResourceExhausted = &Error{Kind: KindResourceExhausted}
)

// Error is the structured failure returned by store operations.
type Error struct {
	Kind    ErrorKind
	Op      string // operation that failed, e.g. "create_mission"
	Field   string // offending input, when applicable
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Field != "" {
		b.WriteString(" (")
		b.WriteString(e.Field)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target matches this error by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// InvalidArgument builds an invalid-argument error for the named field.
func InvalidArgument(op, field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error for the given entity and id.
func NotFound(op string, entity EntityType, id int) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

// Conflict builds a duplicate-key error for the given entity and id.
func Conflict(op string, entity EntityType, id int) *Error {
	return &Error{Kind: KindConflict, Op: op, Message: fmt.Sprintf("%s %d already exists", entity, id)}
}

// ResourceExhausted wraps an allocation failure.
func ResourceExhausted(op string, cause error) *Error {
	return &Error{Kind: KindResourceExhausted, Op: op, Cause: cause}
}

// KindOf returns the kind carried by err, or "" when err is nil or not a
// store error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
