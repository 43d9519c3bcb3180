package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// defaultLog is the process-wide logger used by the package-level
// functions. It writes to standard error so command output on standard
// output stays machine-readable.
var (
	defaultMu  sync.RWMutex
	defaultLog = New(os.Stderr)
)

// Config reconfigures the default logger, keeping its current settings
// as the base.
func Config(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the current default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// With returns a copy of the default logger that includes the given
// attributes in every message.
func With(attrs ...slog.Attr) Logger {
	return Default().With(attrs...)
}

// TraceContext logs at trace level to the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().TraceContext(ctx, msg, attrs...)
}

// Trace logs at trace level to the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	Default().Trace(msg, attrs...)
}

// DebugContext logs at debug level to the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().DebugContext(ctx, msg, attrs...)
}

// Debug logs at debug level to the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().Debug(msg, attrs...)
}

// InfoContext logs at info level to the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().InfoContext(ctx, msg, attrs...)
}

// Info logs at info level to the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().Info(msg, attrs...)
}

// WarnContext logs at warn level to the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().WarnContext(ctx, msg, attrs...)
}

// Warn logs at warn level to the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().Warn(msg, attrs...)
}

// ErrorContext logs at error level to the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().ErrorContext(ctx, msg, attrs...)
}

// Error logs at error level to the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().Error(msg, attrs...)
}
