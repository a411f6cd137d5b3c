package logger

import (
	"log/slog"
	"net/http"

	"github.com/xy-planning-network/personachat"
)

var _ slog.LogValuer = LogContext{}

// maskedParams lists query params whose values never reach a log.
var maskedParams = []string{"code", "state"}

// A LogContext provides additional information
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request
}

// LogValue groups the non-zero fields of the LogContext.
//
// OAuth callback params in the request URL are masked.
//
// LogValue implements [log/slog.LogValuer].
func (lc LogContext) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)
	if lc.Data != nil {
		attrs = append(attrs, slog.Any("data", lc.Data))
	}

	if lc.Error != nil {
		attrs = append(attrs, slog.String("error", lc.Error.Error()))
	}

	if lc.Request != nil && lc.Request.URL != nil {
		u := *lc.Request.URL
		q := u.Query()
		for _, key := range maskedParams {
			personachat.Mask(q, key)
		}
		u.RawQuery = q.Encode()

		req := []any{
			slog.String("method", lc.Request.Method),
			slog.String("url", u.String()),
		}

		if id, ok := lc.Request.Context().Value(personachat.RequestIDKey).(string); ok {
			req = append(req, slog.String("requestID", id))
		}

		attrs = append(attrs, slog.Group("request", req...))
	}

	return slog.GroupValue(attrs...)
}
