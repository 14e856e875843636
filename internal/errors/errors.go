// Package errors implements vlsng's error taxonomy: one typed error carrying
// source-line context, reported to the log sink and then aborting the
// current top-level operation (parse, tick, or procedure call).
package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind is the top-level error taxonomy from spec.md §7.
type Kind string

const (
	Lexical   Kind = "LexicalError"
	Syntactic Kind = "SyntacticError"
	Semantic  Kind = "SemanticError"
	TypeArity Kind = "TypeArityError"
	IO        Kind = "IOError"
)

// Location pins an error to a line in the source being parsed.
type Location struct {
	File string
	Line int
}

// VlsngError is the single error type the runtime produces; it carries
// enough context for a host to render a useful diagnostic without crawling
// a stack trace.
type VlsngError struct {
	Kind     Kind
	Message  string
	Location Location
	Source   string // the offending source line, if available
	cause    error
}

func (e *VlsngError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Message))
	if e.Location.Line > 0 {
		file := e.Location.File
		if file == "" {
			file = "<source>"
		}
		sb.WriteString(fmt.Sprintf(" (%s:%d)", file, e.Location.Line))
	}
	if e.Source != "" {
		sb.WriteString(fmt.Sprintf("\n  %d | %s", e.Location.Line, e.Source))
	}
	if e.cause != nil {
		sb.WriteString(fmt.Sprintf("\n  caused by: %s", e.cause))
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *VlsngError) Unwrap() error {
	return e.cause
}

// New builds a VlsngError with no source context.
func New(kind Kind, message string) *VlsngError {
	return &VlsngError{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...interface{}) *VlsngError {
	return New(kind, fmt.Sprintf(format, args...))
}

// AtLine attaches a line number and source file to the error.
func (e *VlsngError) AtLine(file string, line int) *VlsngError {
	e.Location = Location{File: file, Line: line}
	return e
}

// WithSource attaches the offending source line's text.
func (e *VlsngError) WithSource(source string) *VlsngError {
	e.Source = source
	return e
}

// Wrap attaches an underlying cause (e.g. an *os.PathError from a failed
// read_file) using github.com/pkg/errors, so the original error chain is
// still inspectable via Cause while the user sees one VlsngError.
func Wrap(kind Kind, cause error, message string) *VlsngError {
	return &VlsngError{Kind: kind, Message: message, cause: pkgerrors.Wrap(cause, message)}
}

// Cause returns the deepest underlying error, or the error itself if it was
// never wrapped.
func Cause(err error) error {
	if ve, ok := err.(*VlsngError); ok && ve.cause != nil {
		return pkgerrors.Cause(ve.cause)
	}
	return pkgerrors.Cause(err)
}
