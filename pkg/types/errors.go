package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindMalformedInput    ErrKind = iota + 1 // batch is not a well-formed operation list
	ErrKindInvalidOperation                     // unknown op, bad parameters, value too large
	ErrKindNodeNotFound                         // path does not resolve
	ErrKindPropertyNotFound                     // node has no property with that name
	ErrKindNodeAlreadyExists                    // add_node target already resolves
)

// String returns the human readable category name.
func (k ErrKind) String() string {
	switch k {
	case ErrKindMalformedInput:
		return "Malformed input"
	case ErrKindInvalidOperation:
		return "Invalid operation"
	case ErrKindNodeNotFound:
		return "Node not found"
	case ErrKindPropertyNotFound:
		return "Property not found"
	case ErrKindNodeAlreadyExists:
		return "Node already exists"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, types.ErrNodeNotFound) matches any node lookup failure
// regardless of which path was reported.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrMalformedInput    = &Error{Kind: ErrKindMalformedInput, Msg: "malformed input"}
	ErrInvalidOperation  = &Error{Kind: ErrKindInvalidOperation, Msg: "invalid operation"}
	ErrNodeNotFound      = &Error{Kind: ErrKindNodeNotFound, Msg: "node not found"}
	ErrPropertyNotFound  = &Error{Kind: ErrKindPropertyNotFound, Msg: "property not found"}
	ErrNodeAlreadyExists = &Error{Kind: ErrKindNodeAlreadyExists, Msg: "node already exists"}
)

// Errorf builds a typed error of the given kind without an underlying cause.
func Errorf(kind ErrKind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a typed error of the given kind around cause.
func Wrap(kind ErrKind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
