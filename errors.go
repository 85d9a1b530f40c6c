package reparse

import (
	"errors"
	"fmt"
)

const Namespace = "reparse"

var (
	ErrReentrantParse = errors.New(Namespace + ": parse already in progress")
	ErrDisposed       = errors.New(Namespace + ": cursor has been disposed")
	ErrBackwardMove   = errors.New(
		Namespace + ": cannot move before the first retained element",
	)
	ErrUnsupportedOperation = errors.New(
		Namespace + ": operation is not supported in the current state",
	)
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)

// ParseError reports a source-level failure together with the index at which
// it surfaced. Grammar failure is never a ParseError; it is the empty result
// stream.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse failed at index %d: %v", Namespace, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "%s: parse failed at index %d: %+v", Namespace, e.Index, e.Err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractSourceIndex returns the failing source index from err if present.
func ExtractSourceIndex(err error) (int, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Index, true
	}
	return 0, false
}
