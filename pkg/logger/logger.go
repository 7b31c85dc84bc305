// Package logger wraps log/slog with a process-wide leveled logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	Init(slog.LevelInfo)
}

// Init configures the process logger with the given level.
func Init(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	defaultLogger.Store(slog.New(handler))
}

// ParseLevel maps a level name to a slog.Level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs at debug level with key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Load().Debug(msg, args...)
}

// Info logs at info level with key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Load().Info(msg, args...)
}

// Warn logs at warn level with key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Load().Warn(msg, args...)
}

// Error logs at error level with key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Load().Error(msg, args...)
}
