package logging

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger defines the interface for logging.
// Implementations are backed by zerolog except NullLogger.
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields Fields)

	// Info logs an info message
	Info(ctx context.Context, msg string, fields Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a logger with additional fields
	WithFields(fields Fields) Logger

	// Close flushes and closes the logger
	Close() error
}

var zerologLevels = map[Level]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
}

// zerologLevel maps a Level onto zerolog's levels; unknown levels log at info
func zerologLevel(level Level) zerolog.Level {
	if zl, ok := zerologLevels[level]; ok {
		return zl
	}
	return zerolog.InfoLevel
}

// ParseLevel parses a log level name in any case; "warning" is accepted
// for warn and anything unrecognised yields InfoLevel.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	zl, err := zerolog.ParseLevel(s)
	if err != nil {
		return InfoLevel
	}
	for level, candidate := range zerologLevels {
		if candidate == zl {
			return level
		}
	}
	return InfoLevel
}

// LevelString returns the upper-case name of level, or UNKNOWN
func LevelString(level Level) string {
	zl, ok := zerologLevels[level]
	if !ok {
		return "UNKNOWN"
	}
	return strings.ToUpper(zl.String())
}
