package logger

import (
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/personachat"
)

// A SentryLogger logs through another Logger and reports errors to Sentry.
type SentryLogger struct {
	l Logger
}

// NewSentryLogger initializes the Sentry client with dsn
// and constructs a SentryLogger wrapping l.
//
// If the Sentry client cannot be initialized, l is returned.
func NewSentryLogger(env personachat.Environment, l Logger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  env.String(),
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		l.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return l
	}

	return &SentryLogger{l: l}
}

// Debug writes a debug log.
func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }

// Error writes an error log and reports it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.send(sentry.LevelError, msg, ctx)
}

// Info writes an info log.
func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.l.Info(msg, ctx) }

// Warn writes a warning log.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) { sl.l.Warn(msg, ctx) }

// LogLevel returns the level of the wrapped Logger.
func (sl *SentryLogger) LogLevel() slog.Level { return sl.l.LogLevel() }

// send reports the message, or the error in ctx, on a scope carrying ctx.
func (sl *SentryLogger) send(level sentry.Level, msg string, ctx *LogContext) {
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		if ctx == nil {
			hub.CaptureMessage(msg)
			return
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Data != nil {
			scope.SetExtras(ctx.Data)
		}

		if ctx.Error != nil {
			hub.CaptureException(fmt.Errorf("%s: %w", msg, ctx.Error))
			return
		}

		hub.CaptureMessage(msg)
	})
}
