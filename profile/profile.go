package profile

// Config returns the full profiler configuration. The functional-value
// representation lets option constructors compose without a struct that
// would differ between tagged and untagged builds.
type Config func() (mode, path string, quiet bool)

// Start launches the profiler described by the configuration and returns
// a handle for stopping it.
//
// Without the pprof build tag, or with an empty mode, Start returns a
// no-op handle. Both Start and Stop are always safe to call.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns an option setting the profiling mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithPath returns an option setting the profile output directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithQuiet returns an option suppressing the profiler's own logging.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

type ignore struct{}

func (ignore) Stop() {}
