package ranger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/auth"
	"github.com/xy-planning-network/personachat/http/middleware"
	"github.com/xy-planning-network/personachat/http/resp"
	"github.com/xy-planning-network/personachat/http/router"
	"github.com/xy-planning-network/personachat/http/session"
	"github.com/xy-planning-network/personachat/http/template"
	"github.com/xy-planning-network/personachat/logger"
	"github.com/xy-planning-network/personachat/view"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	AppTitleEnvVar   = "APP_TITLE"
	defaultAppTitle  = "PersonaChat"
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "hello@xyplanningnetwork.com"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"
	maintModeEnvVar   = "MAINTENANCE_MODE"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLvl   = slog.LevelInfo
	logJSONEnvVar   = "LOG_JSON"
	defaultLogJSON  = false
	sentryDsnEnvVar = "SENTRY_DSN"

	// Metrics defaults
	metricsNamespace = "personachat"
	MetricsPath      = "/metrics"

	// OAuth defaults
	oauthClientIDEnvVar     = "OAUTH_CLIENT_ID"
	oauthClientSecretEnvVar = "OAUTH_CLIENT_SECRET"

	// Rate limiting defaults
	rateLimitEnvVar  = "RATE_LIMIT"
	defaultRateLimit = 10.0
	rateBurstEnvVar  = "RATE_BURST"
	defaultRateBurst = 30

	// Static assets and templates
	AssetsPrefix      = "/assets"
	templateDirEnvVar = "TEMPLATE_DIR"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	redisURLEnvVar          = "REDIS_URL"
	redisPasswordEnvVar     = "REDIS_PASSWORD"
	sessionMaxAge           = 3600 * 24 * 7
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
func defaultAppLogger(env personachat.Environment, output io.Writer) logger.Logger {
	slogger := newSlogger(personachat.AppLogKind, env, output)
	var l logger.Logger = logger.New(slogger)
	l.Debug("setting up app logger", nil)
	if dsn := os.Getenv(sentryDsnEnvVar); dsn != "" {
		l = logger.NewSentryLogger(env, l, dsn)
		l.Debug("using SentryLogger for app logger", nil)
	}

	return l
}

// defaultHTTPLogger constructs a [*log/slog.Logger] for use in HTTP router logging.
func defaultHTTPLogger(env personachat.Environment, output io.Writer) *slog.Logger {
	sl := newSlogger(personachat.HTTPLogKind, env, output)
	sl.Debug("setting up HTTP router logger")

	return sl
}

// newSlogger toggles constructing the specific [*log/slog.Logger]
// from the given parameters.
func newSlogger(kind slog.Value, env personachat.Environment, out io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(personachat.EnvVarOrLogLevel(logLevelEnvVar, defaultLogLvl))

	useJSON := !env.IsDevelopment() || personachat.EnvVarOrBool(logJSONEnvVar, defaultLogJSON)
	isHTTP := kind.String() == personachat.HTTPLogKind.String()

	var handler slog.Handler
	switch {
	case useJSON && !isHTTP:
		opts := &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		}
		handler = slog.NewJSONHandler(out, opts)

	case !useJSON && !isHTTP:
		opts := &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.ColorizeLevel(groups, a)
				return logger.TruncSourceAttr(groups, a)
			},
		}
		handler = slog.NewTextHandler(out, opts)

	case useJSON:
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}
		handler = slog.NewJSONHandler(out, opts)

	default:
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}
		handler = slog.NewTextHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		{Key: personachat.LogKindKey, Value: kind},
	})

	return slog.New(handler)
}

// defaultAuth configures signing in with Google when OAuth client credentials are set.
// Without them, nil returns and the Auth view offers no sign-in link.
func defaultAuth(base *url.URL) (*auth.Service, error) {
	id := os.Getenv(oauthClientIDEnvVar)
	secret := os.Getenv(oauthClientSecretEnvVar)
	if id == "" || secret == "" {
		return nil, nil
	}

	callback := base.JoinPath("oauth", "callback", auth.GoogleProvider)
	return auth.NewService(id, secret, callback.String())
}

// defaultToolbox offers shortcuts to pages that are tedious to reach by hand.
func defaultToolbox(env personachat.Environment) personachat.Toolbox {
	return personachat.NewToolbox(env,
		personachat.Tool{
			Title: "Routing",
			Actions: []personachat.ToolAction{
				{Name: "Follow an unknown path", URL: "/nonexistent"},
				{Name: "Resolve a Chat Window", URL: view.APIPrefix + view.NavigatePath + "?path=/ChatWindow/Alice"},
			},
		},
		personachat.Tool{
			Title: "Sign in",
			Actions: []personachat.ToolAction{
				{Name: "Provider refused", URL: "/oauth/callback/" + auth.GoogleProvider + "?error=access_denied"},
			},
		},
		personachat.Tool{
			Title:   "Metrics",
			Actions: []personachat.ToolAction{{Name: "Prometheus", URL: MetricsPath}},
		},
	)
}

// defaultMetrics constructs a registry holding Go runtime, process, and request collectors.
func defaultMetrics() (*prometheus.Registry, *middleware.Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg, middleware.NewMetrics(reg, metricsNamespace)
}

// defaultParser constructs a *template.Parse to be used
// when responding to HTTP requests with [*resp.Responder.Html].
//
// defaultParser makes available these functions in an HTML template:
//
//   - "assetURI"
//   - "env"
//   - "title" returns the value set by the APP_TITLE env var
//   - "nonce"
//   - "rootUrl"
//
// When TEMPLATE_DIR is set, templates found there shadow the embedded view templates,
// e.g. TEMPLATE_DIR=view while editing them.
func defaultParser(env personachat.Environment, title string) *template.Parse {
	var opts []template.ParserOptFn
	if dir := os.Getenv(templateDirEnvVar); dir != "" {
		opts = append(opts, template.WithFS(os.DirFS(dir)))
	}

	return template.NewParser(append(opts,
		template.WithFS(view.Templates()),
		template.WithFn(template.AssetURI(env, view.Assets(), AssetsPrefix)),
		template.WithFn(template.Env(env)),
		template.WithFn(template.Title(title)),
	)...)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger, u *url.URL, p template.Parser, contact string) *resp.Responder {
	return resp.NewResponder(
		resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErr, contact)),
		resp.WithErrTemplate(template.ErrTmpl),
		resp.WithLayoutTemplate(template.LayoutTmpl),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(u.String()),
	)
}

// defaultMiddlewares lists the middleware.Adapters every request passes through, outermost first.
func defaultMiddlewares(
	env personachat.Environment,
	sessions session.SessionStorer,
	m *middleware.Metrics,
) []middleware.Adapter {
	return []middleware.Adapter{
		middleware.RequestID(),
		middleware.RecordMetrics(m),
		middleware.ForceHTTPS(env),
		middleware.InjectIPAddress(),
		middleware.RateLimit(middleware.NewVisitors(
			personachat.EnvVarOrFloat(rateLimitEnvVar, defaultRateLimit),
			personachat.EnvVarOrInt(rateBurstEnvVar, defaultRateBurst),
		)),
		middleware.InjectSession(sessions),
	}
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
func defaultRouter(env personachat.Environment, httpLog *slog.Logger) *router.Router {
	return router.New(env, middleware.LogRequest(httpLog))
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// defaultSessionStore relies on these env vars:
//   - APP_TITLE
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//   - REDIS_URL
//   - REDIS_PASSWORD
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
// Environments able to use stubs generate throwaway keys when they are unset.
func defaultSessionStore(env personachat.Environment, appName string) (session.SessionStorer, error) {
	appName = cases.Lower(language.English).String(appName)
	appName = regexp.MustCompile(`[,':]`).ReplaceAllString(appName, "")
	appName = regexp.MustCompile(`\s`).ReplaceAllString(appName, "-")

	cfg := session.Config{
		AuthKey:     os.Getenv(SessionAuthKeyEnvVar),
		EncryptKey:  os.Getenv(SessionEncryptKeyEnvVar),
		Env:         env,
		SessionName: "personachat-" + appName,
	}

	if env.CanUseServiceStub() {
		if cfg.AuthKey == "" {
			cfg.AuthKey = session.NewKey()
		}

		if cfg.EncryptKey == "" {
			cfg.EncryptKey = session.NewKey()
		}
	}

	args := []session.ServiceOpt{session.WithMaxAge(sessionMaxAge)}
	if uri := os.Getenv(redisURLEnvVar); uri != "" {
		args = append(args, session.WithRedis(uri, os.Getenv(redisPasswordEnvVar)))
	} else {
		args = append(args, session.WithCookie())
	}

	return session.NewStoreService(cfg, args...)
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := personachat.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  personachat.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  personachat.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: personachat.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
