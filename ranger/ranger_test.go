package ranger_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/personachat/http/template"
	tt "github.com/xy-planning-network/personachat/http/template/templatetest"
	"github.com/xy-planning-network/personachat/logger"
	"github.com/xy-planning-network/personachat/ranger"
	"github.com/xy-planning-network/personachat/view"
)

// clearEnv unsets the env vars that would reach out to other services.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"MAINTENANCE_MODE",
		"OAUTH_CLIENT_ID",
		"OAUTH_CLIENT_SECRET",
		"REDIS_URL",
		"SENTRY_DSN",
		"SESSION_AUTH_KEY",
		"SESSION_ENCRYPTION_KEY",
		"TEMPLATE_DIR",
	} {
		t.Setenv(key, "")
	}
}

// newRequest builds a request arriving through a TLS terminating proxy.
func newRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	return r
}

func newTestRanger(t *testing.T, opts ...ranger.RangerOption) *ranger.Ranger {
	t.Helper()

	opts = append([]ranger.RangerOption{ranger.WithEnv("TESTING"), ranger.WithLogOutput(io.Discard)}, opts...)
	rng, err := ranger.New(opts...)
	require.Nil(t, err)

	return rng
}

func TestNew(t *testing.T) {
	// Arrange
	clearEnv(t)

	// Act
	rng := newTestRanger(t)

	// Assert
	require.Equal(t, "TESTING", rng.EmitEnv().String())
	require.NotNil(t, rng.EmitSessionStore())
	require.Equal(t, rng.Router, rng.EmitServer().Handler)

	var paths []string
	for _, route := range rng.Routes() {
		paths = append(paths, route.Path)
	}
	require.Equal(t, []string{
		ranger.MetricsPath,
		view.MenuPath,
		view.ChatWindowPath,
		view.AuthPath,
		view.OAuthCallbackPath,
		view.APIPrefix + view.NavigatePath,
	}, paths)
}

func TestNewWithSentry(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")

	// Act
	rng := newTestRanger(t)

	// Assert
	require.IsType(t, &logger.SentryLogger{}, rng.EmitLogger())
}

func TestNewBadConfig(t *testing.T) {
	// Arrange
	clearEnv(t)

	// Act
	_, err := ranger.New(ranger.WithEnv("PRODUCTION"), ranger.WithLogOutput(io.Discard))

	// Assert
	require.ErrorIs(t, err, ranger.ErrBadConfig)

	// Act
	_, err = ranger.New(ranger.WithEnv("TESTING"), ranger.WithBaseURL("not a url"), ranger.WithLogOutput(io.Discard))

	// Assert
	require.ErrorIs(t, err, ranger.ErrBadConfig)
	require.ErrorIs(t, err, ranger.ErrNotValid)
}

func TestRangerServesViews(t *testing.T) {
	// Arrange
	clearEnv(t)
	rng := newTestRanger(t)

	w := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/ChatWindow/Alice")
	r.Header.Set("Accept", "text/html")

	// Act
	rng.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `data-persona="Alice"`)

	// Arrange
	w = httptest.NewRecorder()
	r = newRequest(http.MethodGet, ranger.MetricsPath)

	// Act
	rng.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `personachat_http_requests_total{code="200",view="chat-window"} 1`)
}

func TestRangerServesAssets(t *testing.T) {
	// Arrange
	clearEnv(t)
	rng := newTestRanger(t)

	w := httptest.NewRecorder()
	r := newRequest(http.MethodGet, ranger.AssetsPrefix+"/app.css")

	// Act
	rng.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("Cache-Control"))
}

func TestRangerMaintenanceMode(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("MAINTENANCE_MODE", "true")
	rng := newTestRanger(t)

	w := httptest.NewRecorder()
	r := newRequest(http.MethodGet, view.AuthPath)

	// Act
	rng.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "600", w.Header().Get("Retry-After"))
	require.Contains(t, w.Body.String(), "down for maintenance")
}

func TestRangerShutdown(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("PORT", "0")
	ctx, cancel := context.WithCancel(context.Background())
	rng := newTestRanger(t, ranger.WithContext(ctx))

	done := make(chan error, 1)
	go func() { done <- rng.Guide() }()

	// Act
	cancel()

	// Assert
	require.Nil(t, <-done)
}

func TestMaintModeHandler(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(slog.New(slog.NewTextHandler(b, &slog.HandlerOptions{AddSource: true})))
	msg := "Sorry for the inconvenience"
	p := tt.NewParser(tt.NewFile(template.MaintenanceTmpl, []byte(msg)))
	handler := ranger.MaintModeHandler(p, l, "test@example.com")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/maint-mode-test", nil)

	// Act
	handler.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "600", w.Header().Get("Retry-After"))
	require.Equal(t, msg, w.Body.String())
}
