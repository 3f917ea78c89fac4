// Package logger provides the leveled reporter passed into core services.
// There is no package-level logger; construct one and inject it.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes leveled log lines to a single writer.
// Debug lines are emitted only in verbose mode.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

// New creates a logger writing to out. When verbose is false, Debugf is a
// no-op.
func New(out io.Writer, verbose bool) *Logger {
	return &Logger{out: out, verbose: verbose}
}

// SetVerbose enables or disables debug output.
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// Debugf prints a debug message if verbose mode is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	l.mu.Lock()
	verbose := l.verbose
	l.mu.Unlock()
	if !verbose {
		return
	}
	l.printf("DEBUG", format, args...)
}

// Infof prints an informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.printf("INFO", format, args...)
}

// Warnf prints a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.printf("WARN", format, args...)
}

// Errorf prints an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.printf("ERROR", format, args...)
}

func (l *Logger) printf(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "["+level+"] "+format+"\n", args...)
}
