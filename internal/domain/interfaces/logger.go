// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// StdoutLogger writes one line per message to stdout
type StdoutLogger struct {
	out     io.Writer
	debug   bool
	context []Field
}

// NewStdoutLogger creates a logger writing to w (os.Stdout when nil)
func NewStdoutLogger(w io.Writer, debug bool) *StdoutLogger {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutLogger{out: w, debug: debug}
}

// With returns a logger that prepends fields to every message
func (s *StdoutLogger) With(fields ...Field) *StdoutLogger {
	ctx := make([]Field, 0, len(s.context)+len(fields))
	ctx = append(ctx, s.context...)
	ctx = append(ctx, fields...)
	return &StdoutLogger{out: s.out, debug: s.debug, context: ctx}
}

// Debug logs debug-level messages when debug output is enabled
func (s *StdoutLogger) Debug(msg string, fields ...Field) {
	if !s.debug {
		return
	}
	s.log("DEBUG", msg, fields)
}

// Info logs informational messages to stdout
func (s *StdoutLogger) Info(msg string, fields ...Field) {
	s.log("INFO", msg, fields)
}

// Warn logs warning messages to stdout
func (s *StdoutLogger) Warn(msg string, fields ...Field) {
	s.log("WARN", msg, fields)
}

func (s *StdoutLogger) Error(msg string, fields ...Field) {
	s.log("ERROR", msg, fields)
}

func (s *StdoutLogger) log(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(": ")
	b.WriteString(msg)
	for _, f := range s.context {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(s.out, b.String())
}
