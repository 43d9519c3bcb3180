package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is an immutable structured logger. The zero value discards all
// messages; construct usable loggers with [New].
type Logger struct {
	slog *slog.Logger
	cfg  config
}

// New creates a Logger writing to w. Defaults are [DefaultLevel],
// [DefaultFormat], [DefaultTimeLayout], call sites omitted, and color
// disabled; override with options.
func New(w io.Writer, opts ...Option) Logger {
	if w == nil {
		w = io.Discard
	}

	cfg := config{
		output:     w,
		level:      DefaultLevel,
		format:     DefaultFormat,
		timeLayout: DefaultTimeLayout,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return Logger{cfg: cfg, slog: slog.New(cfg.handler())}
}

// Wrap returns a new Logger with the receiver's configuration as the
// base and the given options applied over it.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := l.cfg
	if cfg.output == nil {
		cfg = config{
			output:     io.Discard,
			level:      DefaultLevel,
			format:     DefaultFormat,
			timeLayout: DefaultTimeLayout,
		}
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return Logger{cfg: cfg, slog: slog.New(cfg.handler())}
}

// With returns a new Logger that includes the given attributes in every
// message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.slog == nil {
		return l
	}

	return Logger{
		cfg:  l.cfg,
		slog: slog.New(l.slog.Handler().WithAttrs(attrs)),
	}
}

// Level returns the configured minimum level.
func (l Logger) Level() Level {
	if l.slog == nil {
		return DefaultLevel
	}

	return l.cfg.level
}

// Format returns the configured output format.
func (l Logger) Format() Format {
	if l.slog == nil {
		return DefaultFormat
	}

	return l.cfg.format
}

// TraceContext logs a message at trace level with the provided context.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelTrace, msg, attrs...)
}

// DebugContext logs a message at debug level with the provided context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelDebug, msg, attrs...)
}

// InfoContext logs a message at info level with the provided context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelInfo, msg, attrs...)
}

// WarnContext logs a message at warn level with the provided context.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at error level with the provided context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs...)
}

// Error logs a message at error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelError, msg, attrs...)
}

// log constructs the record manually so the captured call site skips the
// level method and this function, landing on the actual caller.
func (l Logger) log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if l.slog == nil {
		return
	}

	if !l.slog.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	// 1=Callers, 2=log, 3=level method.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.slog.Handler().Handle(ctx, r)
}
