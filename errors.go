package gosolve

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an evaluation failed.
type ErrorKind int

const (
	KindEvaluation ErrorKind = iota
	KindEmptyInput
	KindMissingEquals
	KindParse
	KindTypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindMissingEquals:
		return "missing_equals"
	case KindParse:
		return "parse"
	case KindTypeMismatch:
		return "type_mismatch"
	default:
		return "evaluation"
	}
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrEmptyInput    = &Error{Kind: KindEmptyInput, Message: "enter an equation"}
	ErrMissingEquals = &Error{Kind: KindMissingEquals, Message: "the equation must contain '='"}
	ErrParse         = &Error{Kind: KindParse, Message: "malformed expression"}
	ErrTypeMismatch  = &Error{Kind: KindTypeMismatch, Message: "degree does not match the equation type"}
	ErrEvaluation    = &Error{Kind: KindEvaluation, Message: "evaluation failed"}
)

// Error is the only error type Evaluate returns.
type Error struct {
	Kind    ErrorKind
	Message string

	// Side is "left" or "right" for parse errors.
	Side string
	// Input is the offending substring for parse errors.
	Input string
	// Offset is the byte offset of a parse error within Input, or -1.
	Offset int

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindEvaluation {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind so callers can write errors.Is(err, gosolve.ErrParse).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of err, or KindEvaluation when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindEvaluation
}

// DisplayError renders err the way the result area shows it.
func DisplayError(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Offset: -1, Err: err}
}
