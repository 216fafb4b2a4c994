package flatzinc

import "fmt"

// Loc is a 1-based source position. The zero value means unknown.
type Loc struct {
	Line   int
	Column int
}

func (l Loc) known() bool { return l.Line > 0 }

func (l Loc) String() string {
	if !l.known() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// ErrorKind classifies translation failures.
type ErrorKind uint8

const (
	// ErrIO covers file reading failures.
	ErrIO ErrorKind = iota
	// ErrLex covers tokenization failures.
	ErrLex
	// ErrParse covers syntax failures.
	ErrParse
	// ErrMap covers semantic failures during lowering: undefined
	// symbols, arity mismatches, invalid domains, length mismatches.
	ErrMap
	// ErrUnsupported marks constructs that are recognized but cannot
	// be lowered to the backend.
	ErrUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIO:
		return "io error"
	case ErrLex:
		return "lex error"
	case ErrParse:
		return "parse error"
	case ErrMap:
		return "map error"
	case ErrUnsupported:
		return "unsupported feature"
	}
	return "error"
}

// Error is the structured error type of the frontend. The first error
// aborts a translation; partially built models must be discarded.
type Error struct {
	Kind    ErrorKind
	Message string
	At      Loc
	wrapped error
}

func (e *Error) Error() string {
	if e.At.known() {
		return fmt.Sprintf("%s: %s: %s", e.At, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

func lexErrorf(at Loc, format string, args ...any) *Error {
	return &Error{Kind: ErrLex, Message: fmt.Sprintf(format, args...), At: at}
}

func parseErrorf(at Loc, format string, args ...any) *Error {
	return &Error{Kind: ErrParse, Message: fmt.Sprintf(format, args...), At: at}
}

func mapErrorf(at Loc, format string, args ...any) *Error {
	return &Error{Kind: ErrMap, Message: fmt.Sprintf(format, args...), At: at}
}

func unsupportedf(at Loc, format string, args ...any) *Error {
	return &Error{Kind: ErrUnsupported, Message: fmt.Sprintf(format, args...), At: at}
}

func ioError(err error, context string) *Error {
	return &Error{Kind: ErrIO, Message: fmt.Sprintf("%s: %v", context, err), wrapped: err}
}
