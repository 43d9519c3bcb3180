package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug) - 4
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = LevelInfo

// String returns the lowercase name of the level. Trace has no slog
// spelling, so it is handled before delegating.
func (l Level) String() string {
	if l <= LevelTrace {
		return "trace"
	}

	return strings.ToLower(slog.Level(l).String())
}

// Levels returns the names of all defined levels, most verbose first.
func Levels() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}

// ParseLevel parses a level name, case-insensitively. Unrecognized input
// yields [DefaultLevel].
func ParseLevel(s string) Level {
	if strings.EqualFold(strings.TrimSpace(s), "trace") {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects the output encoding for log messages.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatText

// String returns the lowercase name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "text"
}

// Formats returns the names of all defined formats.
func Formats() []string {
	return []string{"text", "json"}
}

// ParseFormat parses a format name, case-insensitively. Unrecognized
// input yields [DefaultFormat].
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}

	return FormatText
}

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// namedLayouts maps spellable layout names to time package constants.
var namedLayouts = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"none":        "",
}

// resolveLayout maps a named layout to its constant, or returns custom
// layouts verbatim. An empty name disables timestamps.
func resolveLayout(layout string) string {
	trimmed := strings.TrimSpace(layout)
	if trimmed == "" {
		return ""
	}

	if std, ok := namedLayouts[strings.ToLower(trimmed)]; ok {
		return std
	}

	return layout
}

// config holds the settings for a Logger.
type config struct {
	output     io.Writer
	level      Level
	format     Format
	timeLayout string
	caller     bool
	color      bool
}

// Option applies a configuration setting to a Logger under construction.
type Option func(*config)

// WithOutput sets the destination writer. A nil writer discards output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel sets the minimum level; messages below it are discarded.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat sets the output encoding.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the timestamp layout, either a named layout such
// as "RFC3339" or "stampmilli", or a custom [time.Time.Format] string.
// The name "none" (or an empty string) omits timestamps entirely.
func WithTimeLayout(layout string) Option {
	return func(c *config) { c.timeLayout = resolveLayout(layout) }
}

// WithCaller controls whether the logging call site is included.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithColor controls ANSI color in text output. Color never applies to
// JSON output.
func WithColor(enable bool) Option {
	return func(c *config) { c.color = enable }
}

// handlerOptions builds the slog options shared by all handler kinds:
// level gating, optional call-site capture, timestamp formatting, and
// spelling the trace level as "TRACE".
func (c config) handlerOptions() *slog.HandlerOptions {
	layout := c.timeLayout

	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					if layout == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(t.Format(layout))
				}

			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(
						strings.ToUpper(Level(l).String()))
				}
			}

			return a
		},
	}
}

// handler constructs the slog.Handler described by the configuration.
func (c config) handler() slog.Handler {
	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.output, c.handlerOptions())
	}

	if c.color {
		return newColorHandler(c.output, c.handlerOptions())
	}

	return slog.NewTextHandler(c.output, c.handlerOptions())
}
