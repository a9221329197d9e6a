package log

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Logger provides a simplified structured logging interface over
// [log/slog]. The zero value is valid: every method on it is a silent
// no-op, which lets libraries accept a Logger without forcing callers
// to configure one.
type Logger struct {
	handler slog.Handler
	level   Level
}

// Make creates a new Logger writing to w with the given options.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(opts...)

	ho := &slog.HandlerOptions{
		Level: slog.Level(cfg.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(Level(lvl).String())
				}
			}

			if a.Key == slog.TimeKey && cfg.timeLayout != "" {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(cfg.timeLayout))
				}
			}

			return a
		},
	}

	var handler slog.Handler
	if cfg.format == FormatJSON {
		handler = slog.NewJSONHandler(w, ho)
	} else {
		handler = slog.NewTextHandler(w, ho)
	}

	return Logger{handler: handler, level: cfg.level}
}

// With returns a Logger that includes the given attributes in each
// record it emits.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil {
		return l
	}

	return Logger{handler: l.handler.WithAttrs(attrs), level: l.level}
}

// Level returns the minimum level the Logger emits.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.level
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelTrace, msg, attrs...)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelDebug, msg, attrs...)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelInfo, msg, attrs...)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.log(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelError, msg, attrs...)
}

func (l Logger) log(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	// Silently return for zero value loggers
	if l.handler == nil {
		return
	}

	if !l.handler.Enabled(ctx, slog.Level(level)) {
		return
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, 0)
	r.AddAttrs(attrs...)
	_ = l.handler.Handle(ctx, r)
}
