package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// defaultLogger backs the package-level logging functions.
var defaultLogger atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLogger.Store(&l)
}

// Default returns the package-level Logger.
func Default() Logger {
	return *defaultLogger.Load()
}

// SetDefault replaces the package-level Logger.
func SetDefault(l Logger) {
	defaultLogger.Store(&l)
}

// Trace logs at Trace level using the package-level Logger.
func Trace(msg string, attrs ...slog.Attr) { Default().Trace(msg, attrs...) }

// Debug logs at Debug level using the package-level Logger.
func Debug(msg string, attrs ...slog.Attr) { Default().Debug(msg, attrs...) }

// Info logs at Info level using the package-level Logger.
func Info(msg string, attrs ...slog.Attr) { Default().Info(msg, attrs...) }

// Warn logs at Warn level using the package-level Logger.
func Warn(msg string, attrs ...slog.Attr) { Default().Warn(msg, attrs...) }

// Error logs at Error level using the package-level Logger.
func Error(msg string, attrs ...slog.Attr) { Default().Error(msg, attrs...) }
