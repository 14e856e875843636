// Package vlog implements the process-wide diagnostic log sink: a single
// callback, installed by the host, that consumes all diagnostic and `print`
// output. Grounded on the teacher's debug_callback registration pattern,
// timestamped with ncruces/go-strftime and colorized when the destination is
// a terminal (mattn/go-isatty).
package vlog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	strftime "github.com/ncruces/go-strftime"
)

// Level classifies a log line for the default sink's formatting.
type Level int

const (
	LevelInfo Level = iota
	LevelDiagnostic
	LevelError
)

// Sink receives every emitted log line.
type Sink func(level Level, message string)

var (
	mu      sync.Mutex
	sink    Sink
	useTerm = isatty.IsTerminal(os.Stderr.Fd())
)

// SetSink installs the process-wide callback, replacing any previous one.
// Passing nil restores the default stderr sink.
func SetSink(s Sink) {
	mu.Lock()
	defer mu.Unlock()
	sink = s
}

func current() Sink {
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		return sink
	}
	return defaultSink
}

func defaultSink(level Level, message string) {
	stamp := strftime.Format("%Y-%m-%d %H:%M:%S", time.Now())
	prefix := "INFO"
	switch level {
	case LevelDiagnostic:
		prefix = "DIAG"
	case LevelError:
		prefix = "ERROR"
	}
	if useTerm && level == LevelError {
		fmt.Fprintf(os.Stderr, "\x1b[31m[%s] %s: %s\x1b[0m\n", stamp, prefix, message)
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", stamp, prefix, message)
}

// Emit routes a `print` procedure call's joined output through the sink.
func Emit(message string) {
	current()(LevelInfo, message)
}

// Diagnostic routes a parser/graph diagnostic (with source-line context
// already folded into message) through the sink.
func Diagnostic(message string) {
	current()(LevelDiagnostic, message)
}

// Errorf formats and routes an error-severity line through the sink.
func Errorf(format string, args ...interface{}) {
	current()(LevelError, fmt.Sprintf(format, args...))
}
