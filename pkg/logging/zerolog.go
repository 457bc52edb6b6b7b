package logging

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// zeroLogger adapts a zerolog.Logger to the Logger interface
type zeroLogger struct {
	zl     zerolog.Logger
	closer io.Closer
}

func newZeroLogger(w io.Writer, level Level, closer io.Closer) *zeroLogger {
	zl := zerolog.New(w).With().Timestamp().Logger().Level(zerologLevel(level))
	return &zeroLogger{zl: zl, closer: closer}
}

// Debug logs a debug message
func (l *zeroLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.zl.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Info logs an info message
func (l *zeroLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.zl.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Warn logs a warning message
func (l *zeroLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.zl.Warn().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message
func (l *zeroLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.zl.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// WithFields returns a logger with additional fields sharing the same output
func (l *zeroLogger) WithFields(fields Fields) Logger {
	return &zeroLogger{
		zl:     l.zl.With().Fields(map[string]interface{}(fields)).Logger(),
		closer: nil,
	}
}

// Close closes the underlying output if this logger owns it
func (l *zeroLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
