// Package errkinds defines Symmetrica's closed error taxonomy.
//
// The core never panics and never returns a sentinel "NaN"-like value:
// every undefined or unrepresentable result surfaces as one of the kinds
// below, wrapped with context via fmt.Errorf("...: %w", ...) so callers
// can recover the kind with errors.Is.
package errkinds

import (
	"errors"
	"fmt"
)

// DomainError is returned when an operation is applied where the
// mathematical value is undefined: rat(_, 0), 0^0, inv(0), division by
// the zero polynomial.
var DomainError = errors.New("domain error")

// NumericOverflow is returned when machine-word arithmetic cannot
// represent an intermediate or final result.
var NumericOverflow = errors.New("numeric overflow")

// ParseError is returned by the textual front ends (internal/sexpr,
// internal/infix) on malformed input. The core itself never raises it.
var ParseError = errors.New("parse error")

// ResourceExhausted is returned when an optional step budget is exceeded.
var ResourceExhausted = errors.New("resource exhausted")

// NotImplemented is not wrapped as an error anywhere in the core: the
// integrator and solver report "no match" via a boolean/ok return, never
// by raising NotImplemented. It is kept here only for documentation
// parity with spec.md's taxonomy and for external collaborators (e.g. a
// CLI) that want one sentinel for "the core declined to rewrite this".
var NotImplemented = errors.New("not implemented")

// Wrap annotates kind with a message while preserving errors.Is matching
// against the sentinel kinds above.
func Wrap(kind error, format string, args ...any) error {
	return &wrapped{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	kind error
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }
