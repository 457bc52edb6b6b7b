package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestFileLogger(t *testing.T, config FileLoggerConfig) *FileLogger {
	t.Helper()
	logger, err := NewFileLogger(config)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	return logger
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{
		Path:       logPath,
		Format:     FormatText,
		Level:      InfoLevel,
		MaxSize:    1024 * 1024,
		MaxBackups: 3,
	})
	defer logger.Close()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}

func TestNewFileLogger_CreatesDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "dir", "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatText, Level: InfoLevel})
	defer logger.Close()

	if _, err := os.Stat(filepath.Dir(logPath)); os.IsNotExist(err) {
		t.Error("Log directory was not created")
	}
}

func TestFileLogger_LogLevels(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatText, Level: InfoLevel})

	ctx := context.Background()
	logger.Debug(ctx, "debug message", nil)
	logger.Info(ctx, "info message", nil)
	logger.Warn(ctx, "warn message", nil)
	logger.Error(ctx, "error message", nil, nil)
	logger.Close()

	logContent := readLog(t, logPath)

	if strings.Contains(logContent, "debug message") {
		t.Error("Debug message should be filtered at INFO level")
	}
	for _, msg := range []string{"info message", "warn message", "error message"} {
		if !strings.Contains(logContent, msg) {
			t.Errorf("%q should be present", msg)
		}
	}
}

func TestFileLogger_DebugLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatText, Level: DebugLevel})

	logger.Debug(context.Background(), "debug message", nil)
	logger.Close()

	if !strings.Contains(readLog(t, logPath), "debug message") {
		t.Error("Debug message should be present at DEBUG level")
	}
}

func TestFileLogger_TextFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatText, Level: InfoLevel})

	logger.Info(context.Background(), "copied raw", Fields{"source": "a.cr2", "bytes": 42})
	logger.Close()

	logContent := readLog(t, logPath)
	if !strings.Contains(logContent, "INF") {
		t.Error("Log should contain the INF level marker")
	}
	if !strings.Contains(logContent, "copied raw") {
		t.Error("Log should contain the message")
	}
	if !strings.Contains(logContent, "source=a.cr2") {
		t.Error("Log should contain the field")
	}
}

func TestFileLogger_JSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatJSON, Level: InfoLevel})

	logger.Info(context.Background(), "test message", Fields{"key": "value", "count": 42})
	logger.Close()

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(readLog(t, logPath)), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "test message" {
		t.Errorf("message = %v, want 'test message'", entry["message"])
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want 'value'", entry["key"])
	}
	if entry["time"] == nil {
		t.Error("time should be present")
	}
}

func TestFileLogger_ErrorWithErr(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatJSON, Level: InfoLevel})

	logger.Error(context.Background(), "copy failed", errors.New("permission denied"), Fields{"source": "x.nef"})
	logger.Close()

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(readLog(t, logPath)), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["error"] != "permission denied" {
		t.Errorf("error = %v, want 'permission denied'", entry["error"])
	}
}

func TestFileLogger_WithFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatJSON, Level: InfoLevel})

	child := logger.WithFields(Fields{"run_id": "abc"})
	child.Info(context.Background(), "from child", Fields{"extra": 1})
	child.Close()
	logger.Info(context.Background(), "parent still open", nil)
	logger.Close()

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["run_id"] != "abc" {
		t.Errorf("run_id = %v, want abc", entry["run_id"])
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{
		Path:       logPath,
		Format:     FormatJSON,
		Level:      InfoLevel,
		MaxSize:    200,
		MaxBackups: 2,
	})

	for i := 0; i < 30; i++ {
		logger.Info(context.Background(), "a message long enough to trigger rotation", Fields{"i": i})
	}
	logger.Close()

	if _, err := os.Stat(logPath + ".1"); os.IsNotExist(err) {
		t.Error("Backup file .1 should exist after rotation")
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("Backup file .3 should not exist with MaxBackups=2")
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, WarnLevel)

	logger.Info(context.Background(), "quiet", nil)
	logger.Warn(context.Background(), "output directory created", Fields{"path": "/out"})

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("Info should be filtered at WARN level")
	}
	if !strings.Contains(out, "output directory created") || !strings.Contains(out, "path=/out") {
		t.Errorf("unexpected console output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal writer should not receive colour codes")
	}
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", nil, nil)

	if logger.WithFields(Fields{"k": "v"}) != Logger(logger) {
		t.Error("WithFields should return the same null logger")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := LevelString(tt.level); got != tt.expected {
				t.Errorf("LevelString(%v) = %s, want %s", tt.level, got, tt.expected)
			}
		})
	}
}

func TestFileLogger_ConcurrentWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger := newTestFileLogger(t, FileLoggerConfig{Path: logPath, Format: FormatJSON, Level: InfoLevel})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Info(context.Background(), "concurrent", Fields{"g": n, "j": j})
			}
		}(i)
	}
	wg.Wait()
	logger.Close()

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 100 {
		t.Errorf("got %d lines, want 100", len(lines))
	}
}

func TestMultiLogger(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiLogger(NewConsoleLogger(&a, InfoLevel), nil, NewConsoleLogger(&b, ErrorLevel))

	m.Info(context.Background(), "created output directory", nil)
	m.WithFields(Fields{"run_id": "r1"}).Error(context.Background(), "fatal", errors.New("boom"), nil)

	if !strings.Contains(a.String(), "created output directory") || !strings.Contains(a.String(), "run_id=r1") {
		t.Errorf("first logger output = %q", a.String())
	}
	if strings.Contains(b.String(), "created output directory") {
		t.Error("second logger should filter info")
	}
	if !strings.Contains(b.String(), "boom") {
		t.Errorf("second logger output = %q", b.String())
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
