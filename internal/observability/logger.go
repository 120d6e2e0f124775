// Package observability defines the logging primitives shared across the client.
package observability

import (
	"fmt"
	"log"
	"strings"
)

// Logger captures structured logging behaviours shared across layers.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a key/value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// String builds a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Err builds a field holding an error value.
func Err(err error) Field { return Field{Key: "error", Value: err} }

var defaultLogger Logger = noopLogger{}

// SetLogger overrides the global logger used by the client.
func SetLogger(logger Logger) {
	if logger == nil {
		defaultLogger = noopLogger{}
		return
	}
	defaultLogger = logger
}

// Log returns the current global logger instance.
func Log() Logger {
	return defaultLogger
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...Field) {}
func (noopLogger) Info(string, ...Field)  {}
func (noopLogger) Error(string, ...Field) {}

// StdLogger adapts the standard library logger. The cmd binaries install it;
// library code stays silent by default.
type StdLogger struct {
	L *log.Logger
}

func (s StdLogger) Debug(msg string, fields ...Field) { s.write("DEBUG", msg, fields) }
func (s StdLogger) Info(msg string, fields ...Field)  { s.write("INFO", msg, fields) }
func (s StdLogger) Error(msg string, fields ...Field) { s.write("ERROR", msg, fields) }

func (s StdLogger) write(level, msg string, fields []Field) {
	logger := s.L
	if logger == nil {
		logger = log.Default()
	}
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	logger.Print(b.String())
}
