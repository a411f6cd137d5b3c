package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedView labels requests no route selected a view for.
const unmatchedView = "unmatched"

// Metrics holds the Prometheus collectors RecordMetrics observes requests with.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers request collectors in reg under namespace.
//
// If reg is nil, [prometheus.DefaultRegisterer] is used.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by selected view and status code",
		}, []string{"view", "code"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by selected view",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
	}
}

// RecordMetrics counts and times every request, labelled by the view the router selected.
//
// If m is nil, NoopAdapter returns and this middleware does nothing.
func RecordMetrics(m *Metrics) Adapter {
	if m == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snoop := httpsnoop.CaptureMetrics(h, w, r)

			view := viewName(r)
			if view == "" {
				view = unmatchedView
			}

			m.requests.WithLabelValues(view, strconv.Itoa(snoop.Code)).Inc()
			m.duration.WithLabelValues(view).Observe(snoop.Duration.Seconds())
		})
	}
}
