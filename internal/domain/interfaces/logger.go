// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

import (
	"context"
	"io"
	"log/slog"
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

// SlogLogger adapts *slog.Logger to the Logger interface
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a text logger writing to w at the given level
// ("debug", "info", "warn", "error"; anything else means info)
func NewSlogLogger(w io.Writer, level string, fields ...Field) *SlogLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &SlogLogger{logger: slog.New(handler).With(toArgs(fields)...)}
}

// Debug logs debug-level messages
func (s *SlogLogger) Debug(msg string, fields ...Field) {
	s.log(slog.LevelDebug, msg, fields)
}

// Info logs informational messages
func (s *SlogLogger) Info(msg string, fields ...Field) {
	s.log(slog.LevelInfo, msg, fields)
}

// Warn logs warning messages
func (s *SlogLogger) Warn(msg string, fields ...Field) {
	s.log(slog.LevelWarn, msg, fields)
}

// Error logs error messages
func (s *SlogLogger) Error(msg string, fields ...Field) {
	s.log(slog.LevelError, msg, fields)
}

func (s *SlogLogger) log(level slog.Level, msg string, fields []Field) {
	s.logger.Log(context.Background(), level, msg, toArgs(fields)...)
}

// ParseLevel maps a level name to its slog level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func toArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}
