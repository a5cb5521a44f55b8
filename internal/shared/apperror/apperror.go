// Package apperror defines the error taxonomy shared by all service
// operations. Handlers classify failures into a small set of kinds that
// the transport layer maps onto status codes.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is an unexpected failure with no caller remedy.
	KindInternal Kind = iota
	// KindNotFound indicates a referenced entity does not exist.
	KindNotFound
	// KindBadRequest indicates invalid input or an illegal state transition.
	KindBadRequest
	// KindConflict indicates the request clashes with existing data.
	KindConflict
	// KindForbidden indicates the mutation is not allowed in the current state.
	KindForbidden
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is an application error carrying a kind and a caller-facing message.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string { return e.msg }

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the error's kind.
func (e *Error) Kind() Kind { return e.kind }

// New creates an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap creates an error of the given kind wrapping a cause. The message is
// what callers see; the cause is preserved for errors.Is/As chains.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// NotFoundf creates a KindNotFound error.
func NotFoundf(format string, args ...any) *Error {
	return New(KindNotFound, fmt.Sprintf(format, args...))
}

// BadRequestf creates a KindBadRequest error.
func BadRequestf(format string, args ...any) *Error {
	return New(KindBadRequest, fmt.Sprintf(format, args...))
}

// Conflictf creates a KindConflict error.
func Conflictf(format string, args ...any) *Error {
	return New(KindConflict, fmt.Sprintf(format, args...))
}

// Forbiddenf creates a KindForbidden error.
func Forbiddenf(format string, args ...any) *Error {
	return New(KindForbidden, fmt.Sprintf(format, args...))
}

// KindOf extracts the kind from an error chain. Unclassified errors
// report KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

// IsKind reports whether the error chain contains an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
