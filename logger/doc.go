/*
Package logger provides logging functionality to a personachat app by defining the required behavior in [Logger]
and providing an implementation of it with [AppLogger].

# Overview

The Logger interface outputs messages at certain levels of importance,
represented by [log/slog.Level].
An [AppLogger] emits messages at or above the level its [log/slog.Handler] is enabled for.

# AppLogger

[AppLogger] is a thin layer over a [*log/slog.Logger].
Each method accepts an optional [*LogContext]
carrying data inessential to the message proper
but providing a fuller picture of the application state at the time of logging.
The call site reported by the handler is the caller of the [AppLogger] method,
not [AppLogger] itself.

In development, pair an [AppLogger] with a text handler
using [ColorizeLevel] and [TruncSourceAttr] as ReplaceAttr functions:

	2026-10-19 15:55:21.104 INFO view/handler.go:43 "rendering view" context.data.view=menu

# SentryLogger

[SentryLogger] wraps another [Logger] and additionally reports errors to Sentry.
*/
package logger
