// Package cli contains the command line interface for rollkit.
//
// # Commands
//
//   - eval (default): evaluate a dice expression and print the result
//   - explain: print the structural breakdown of an expression
//   - fmt: reprint an expression in canonical form
//   - repl: interactive session with history and completion
//   - init: write a default configuration file
//
// # Configuration
//
// Flags resolve from the command line first, then from the YAML
// configuration file in the user config directory (by default
// ~/.config/rollkit/config.yaml on Linux). Keys in the file match flag
// names, with hyphens or underscores:
//
//	log-level: debug
//	log-format: text
//	seed: 42
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output encoding (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, stampmilli, none, ...)
//   - --log-caller: include the logging call site
//   - --log-color: colorize text output
//
// # Profiling Options
//
// Available only when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profiling mode (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default
//     ~/.cache/rollkit/pprof)
package cli
