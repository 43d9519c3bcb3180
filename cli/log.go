package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/rollkit/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, so messages emitted while Kong is still
// parsing already use the requested format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information." negatable:""`
	Color      bool      `default:"false"                                      help:"Colorize text output."       negatable:""`
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithColor(f.Color),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("color", f.Color),
	)
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before Kong begins parsing. The TextUnmarshaler types
// handle --log-level and --log-format during normal parsing; this
// pre-scan additionally catches the boolean flags, which do not pass
// through that interface.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		boolValue := func(negated bool) bool {
			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					return !negated
				}

				return v != negated
			}

			return !negated
		}

		// Non-boolean flags may carry the value in the next argument.
		flagValue := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++

				return args[i]
			}

			return ""
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(flagValue()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(flagValue()))

		case "--log-color":
			f.Color = boolValue(false)
			log.Config(log.WithColor(f.Color))

		case "--no-log-color":
			f.Color = boolValue(true)
			log.Config(log.WithColor(f.Color))

		case "--log-caller":
			f.Caller = boolValue(false)
			log.Config(log.WithCaller(f.Caller))

		case "--no-log-caller":
			f.Caller = boolValue(true)
			log.Config(log.WithCaller(f.Caller))
		}
	}
}
