package logging

import "github.com/rs/zerolog"

// NullLogger discards all output; used when no log file is configured
type NullLogger struct {
	*zeroLogger
}

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{zeroLogger: &zeroLogger{zl: zerolog.Nop()}}
}

// WithFields returns the same null logger
func (l *NullLogger) WithFields(fields Fields) Logger {
	return l
}
