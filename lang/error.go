package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined evaluation errors (sentinel values).
var (
	ErrLengthMismatch       = NewError("list length mismatch")
	ErrNonScalarListElement = NewError("list element is not a scalar")
	ErrInvalidStep          = NewError("range step must be nonzero")
	ErrStrongWrapOfScalar   = NewError("strong wrap requires a list value")
	ErrNegativeDiceCount    = NewError("dice count must be non-negative")
	ErrInvalidSides         = NewError("dice sides must be at least 1")
	ErrEmptyFaceList        = NewError("dice face list must be non-empty")
	ErrExpectedList         = NewError("expected a list value")
	ErrExpectedInteger      = NewError("expected an integer value")
	ErrCountOutOfRange      = NewError("keep/drop count out of range")
	ErrUnknownFunction      = NewError("unknown function")
	ErrArityMismatch        = NewError("wrong number of arguments")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
// Errors returned by With and Wrap retain identity with their sentinel so
// callers can match with errors.Is.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg == te.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// LexError reports a character the lexer cannot tokenize.
type LexError struct {
	Char rune
	Pos  Position
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return "lex error at " + e.Pos.String() +
		": unexpected character " + strconv.QuoteRune(e.Char)
}

// LogValue implements slog.LogValuer.
func (e *LexError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("char", string(e.Char)),
		slog.Int("offset", e.Pos.Offset),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
	)
}

// ParseError reports a syntax error with source position.
type ParseError struct {
	Pos      Position
	Expected string // the construct the parser was looking for
	Found    Token  // the token actually encountered
	Source   string // the original source input, for snippet rendering
	err      error  // optional underlying cause
}

// Wrap attaches an underlying cause to the parse error.
func (e *ParseError) Wrap(err error) *ParseError {
	e.err = err

	return e
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ParseError) Unwrap() error { return e.err }

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": expected ")
	buf.WriteString(e.Expected)
	buf.WriteString(", found ")
	buf.WriteString(e.Found.Kind.String())

	if e.err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.err.Error())
	}

	if snippet := e.snippet(); snippet != "" {
		buf.WriteRune('\n')
		buf.WriteString(snippet)
	}

	return buf.String()
}

// snippet renders the offending source line with a caret marker.
func (e *ParseError) snippet() string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}

	line := lines[e.Pos.Line-1]

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Pos.Line))
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := len(strconv.Itoa(e.Pos.Line)) + 5
	if e.Pos.Column > 0 {
		padding += e.Pos.Column - 1
	}

	src.WriteString(strings.Repeat(" ", padding))
	src.WriteRune('^')

	return src.String()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("expected", e.Expected),
		slog.String("found", e.Found.Kind.String()),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
	)
}
