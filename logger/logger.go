package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// contextKey is the attribute key a *LogContext is logged under.
const contextKey = "context"

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() slog.Level
}

// AppLogger implements Logger using [log/slog].
type AppLogger struct {
	l *slog.Logger
}

// New constructs an *AppLogger writing through l.
// If l is nil, [log/slog.Default] is used.
func New(l *slog.Logger) *AppLogger {
	if l == nil {
		l = slog.Default()
	}

	return &AppLogger{l: l}
}

// Debug writes a debug log.
func (l *AppLogger) Debug(msg string, ctx *LogContext) { l.log(slog.LevelDebug, msg, ctx) }

// Error writes an error log.
func (l *AppLogger) Error(msg string, ctx *LogContext) { l.log(slog.LevelError, msg, ctx) }

// Info writes an info log.
func (l *AppLogger) Info(msg string, ctx *LogContext) { l.log(slog.LevelInfo, msg, ctx) }

// Warn writes a warning log.
func (l *AppLogger) Warn(msg string, ctx *LogContext) { l.log(slog.LevelWarn, msg, ctx) }

// LogLevel returns the lowest level the *AppLogger emits.
func (l *AppLogger) LogLevel() slog.Level {
	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.l.Enabled(context.Background(), lvl) {
			return lvl
		}
	}

	return slog.LevelError
}

// Slogger exposes the underlying *slog.Logger.
func (l *AppLogger) Slogger() *slog.Logger { return l.l }

// log builds and handles the record,
// attributing it to the caller of the exported method.
func (l *AppLogger) log(level slog.Level, msg string, lc *LogContext) {
	ctx := context.Background()
	if lc != nil && lc.Request != nil {
		ctx = lc.Request.Context()
	}

	if !l.l.Enabled(ctx, level) {
		return
	}

	// NOTE: skip runtime.Callers, log, and the exported method
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	rec := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if lc != nil {
		rec.AddAttrs(slog.Any(contextKey, lc))
	}

	_ = l.l.Handler().Handle(ctx, rec)
}
