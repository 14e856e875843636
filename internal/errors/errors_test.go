package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessageIncludesKindAndMessage(t *testing.T) {
	err := New(Semantic, "unknown identifier")
	if got := err.Error(); !strings.Contains(got, "SemanticError") || !strings.Contains(got, "unknown identifier") {
		t.Fatalf("Error() = %q, missing kind or message", got)
	}
}

func TestAtLineAddsLocation(t *testing.T) {
	err := New(Syntactic, "unexpected token").AtLine("prog.vlsng", 12)
	got := err.Error()
	if !strings.Contains(got, "prog.vlsng:12") {
		t.Fatalf("Error() = %q, want it to mention prog.vlsng:12", got)
	}
}

func TestAtLineDefaultsFileName(t *testing.T) {
	err := New(Syntactic, "bad").AtLine("", 3)
	if !strings.Contains(err.Error(), "<source>:3") {
		t.Fatalf("Error() = %q, want default file name", err.Error())
	}
}

func TestWithSourceAppendsOffendingLine(t *testing.T) {
	err := New(Lexical, "bad token").AtLine("f", 1).WithSource("x: !! 1")
	if !strings.Contains(err.Error(), "x: !! 1") {
		t.Fatalf("Error() = %q, want source line included", err.Error())
	}
}

func TestNewfFormats(t *testing.T) {
	err := Newf(TypeArity, "expected %d args, got %d", 2, 3)
	if !strings.Contains(err.Error(), "expected 2 args, got 3") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	base := errors.New("disk full")
	err := Wrap(IO, base, "write_file")
	if Cause(err) == nil {
		t.Fatalf("Cause returned nil for a wrapped error")
	}
	if !strings.Contains(err.Error(), "write_file") {
		t.Fatalf("Error() = %q, want message retained", err.Error())
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(IO, base, "read_file")
	if errors.Unwrap(err) == nil {
		t.Fatalf("Unwrap returned nil")
	}
}

func TestCauseOfUnwrappedErrorIsItself(t *testing.T) {
	err := New(Semantic, "plain")
	if Cause(err) != error(err) {
		t.Fatalf("Cause of a never-wrapped error should return itself")
	}
}
