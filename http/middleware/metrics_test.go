package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/middleware"
)

func TestRecordMetrics(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg, "test")
	h := middleware.RecordMetrics(m)(teapotHandler())

	r := httptest.NewRequest(http.MethodGet, "https://example.com/ChatWindow/Alice", nil)
	r = r.Clone(context.WithValue(r.Context(), personachat.ViewKey, "chat-window"))

	// Act
	h.ServeHTTP(httptest.NewRecorder(), r)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "https://example.com/nope", nil))

	// Assert
	require.Equal(t, 2, testutil.CollectAndCount(reg, "test_http_requests_total"))
	require.Equal(t, 2, testutil.CollectAndCount(reg, "test_http_request_duration_seconds"))
}

func TestRecordMetricsNil(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	middleware.RecordMetrics(nil)(teapotHandler()).ServeHTTP(w, r)

	require.Equal(t, http.StatusTeapot, w.Code)
}
