// Package log provides a simplified structured logging interface based
// on [log/slog].
//
// The zero-value Logger discards everything, so libraries can embed one
// unconditionally and let callers opt into output:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON))
//
// A Trace level below Debug is provided for the very chatty records the
// matching engine emits per token.
package log
