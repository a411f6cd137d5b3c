package middleware

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/personachat"
)

// maskedQueryParams lists the query params LogRequest scrubs.
var maskedQueryParams = []string{"code", "password", "state"}

// A LogRequestRecord is the shape of the log LogRequest emits for each request.
type LogRequestRecord struct {
	BodySize       int    `json:"bodySize"`
	Host           string `json:"host"`
	ID             string `json:"requestID"`
	IPAddr         string `json:"ip"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer"`
	ReqContentType string `json:"reqContentType"`
	Scheme         string `json:"scheme"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent"`
	View           string `json:"view"`
}

// attrs flattens the record into top-level attributes.
func (rec LogRequestRecord) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("bodySize", rec.BodySize),
		slog.String("host", rec.Host),
		slog.String("requestID", rec.ID),
		slog.String("ip", rec.IPAddr),
		slog.String("method", rec.Method),
		slog.String("path", rec.Path),
		slog.String("protocol", rec.Protocol),
		slog.String("referrer", rec.Referrer),
		slog.String("reqContentType", rec.ReqContentType),
		slog.String("scheme", rec.Scheme),
		slog.Int("status", rec.Status),
		slog.String("uri", rec.URI),
		slog.String("userAgent", rec.UserAgent),
		slog.String("view", rec.View),
	}
}

// LogRequest logs a LogRequestRecord for every request
// after the rest of the middleware stack and the handler have responded.
//
// LogRequest scrubs the values of these query params:
//   - code
//   - password
//   - state
//
// If l is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l *slog.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			uri := r.URL.Path
			q := r.URL.Query()
			for _, key := range maskedQueryParams {
				personachat.Mask(q, key)
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			rec := LogRequestRecord{
				BodySize:       int(m.Written),
				Host:           r.Host,
				Method:         r.Method,
				Path:           r.URL.Path,
				Protocol:       r.Proto,
				Referrer:       r.Referer(),
				ReqContentType: r.Header.Get("Content-Type"),
				Scheme:         r.URL.Scheme,
				Status:         m.Code,
				URI:            uri,
				UserAgent:      r.UserAgent(),
				View:           viewName(r),
			}

			if id, ok := r.Context().Value(personachat.RequestIDKey).(string); ok {
				rec.ID = id
			}

			if ip, ok := r.Context().Value(personachat.IpAddrKey).(string); ok {
				rec.IPAddr = ip
			}

			attrs := append(rec.attrs(), slog.Duration("duration", m.Duration))
			l.LogAttrs(r.Context(), slog.LevelInfo, "", attrs...)
		})
	}
}
