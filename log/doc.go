// Package log provides a concurrency-safe structured logging interface
// based on [log/slog], with a trace level below debug, selectable text
// and JSON output, and colorized text output for terminals.
//
// A process-wide default logger writes to standard error so command
// output on standard output stays clean. Reconfigure it with [Config]:
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithFormat(log.FormatText))
//	log.Info("ready", slog.String("version", "1.0.0"))
//
// Independent loggers are created with [New] and refined with
// [Logger.Wrap] and [Logger.With].
package log
