package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/auth"
	"github.com/xy-planning-network/personachat/http/middleware"
	"github.com/xy-planning-network/personachat/http/resp"
	"github.com/xy-planning-network/personachat/http/router"
	"github.com/xy-planning-network/personachat/http/session"
	"github.com/xy-planning-network/personachat/http/template"
	"github.com/xy-planning-network/personachat/logger"
	"github.com/xy-planning-network/personachat/view"
)

// A Ranger manages and exposes all components of a personachat app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	auth     *auth.Service
	contact  string
	ctx      context.Context
	env      personachat.Environment
	l        logger.Logger
	logOut   io.Writer
	metrics  *middleware.Metrics
	p        template.Parser
	reg      *prometheus.Registry
	sessions session.SessionStorer
	srv      *http.Server
	title    string
	url      *url.URL
}

// New constructs a Ranger from the provided options
// and mounts every view on its router.
//
// Options supplied to New are applied first;
// defaults configure whatever they leave unset.
// Options returning an OptFollowup finish configuring the Ranger
// once every other component is available.
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{logOut: os.Stdout}
	followups := make([]OptFollowup, 0)

	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := r.setDefaults(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
		}
	}

	if r.Responder == nil {
		r.Responder = defaultResponder(r.l, r.url, r.p, r.contact)
	}

	if r.Router == nil {
		r.Router = defaultRouter(r.env, defaultHTTPLogger(r.env, r.logOut))
		r.Router.OnEveryRequest(defaultMiddlewares(r.env, r.sessions, r.metrics)...)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}
	r.srv.Handler = r.Router

	r.mount()

	return r, nil
}

// setDefaults configures every component no RangerOption set,
// in the order they depend on one another.
func (r *Ranger) setDefaults() error {
	if r.env == "" {
		r.env = personachat.EnvVarOrEnv(environmentEnvVar, personachat.Development)
	}

	if r.url == nil {
		r.url = personachat.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
	}

	r.title = personachat.EnvVarOrString(AppTitleEnvVar, defaultAppTitle)
	r.contact = personachat.EnvVarOrString(ContactUsEnvVar, defaultContactUs)

	if r.l == nil {
		r.l = defaultAppLogger(r.env, r.logOut)
	}
	r.l.Debug(fmt.Sprintf("using env %s", r.env), nil)

	if r.sessions == nil {
		store, err := defaultSessionStore(r.env, r.title)
		if err != nil {
			return err
		}
		r.sessions = store
	}

	if r.auth == nil {
		svc, err := defaultAuth(r.url)
		if err != nil {
			return err
		}

		if svc == nil {
			r.l.Info("no OAuth client configured, sign in is disabled", nil)
		}
		r.auth = svc
	}

	if r.reg == nil {
		r.reg, r.metrics = defaultMetrics()
	}

	if r.p == nil {
		r.p = defaultParser(r.env, r.title)
	}

	return nil
}

// mount serves static assets, metrics, and the views on the Ranger's router.
// In maintenance mode, every other request renders the maintenance page.
func (r *Ranger) mount() {
	r.ServeAssets(AssetsPrefix, view.Assets())
	mountMetrics(r.Router, r.reg)

	if personachat.EnvVarOrBool(maintModeEnvVar, false) {
		r.l.Warn("maintenance mode is on", nil)
		r.CatchAll(MaintModeHandler(r.p, r.l, r.contact))
		return
	}

	opts := []view.HandlerOpt{view.WithToolbox(defaultToolbox(r.env))}
	if r.auth != nil {
		opts = append(opts, view.WithAuth(r.auth))
	}

	origin := &url.URL{Scheme: r.url.Scheme, Host: r.url.Host}
	view.Mount(r.Router, view.NewHandler(r.Responder, r.l, opts...), middleware.CORS(origin.String()))
}

// RouteTable constructs a *router.Router holding the routes a Ranger matches requests against,
// in the same order, without sessions, a server, or maintenance mode.
// Use it to inspect which view a path selects.
func RouteTable(env personachat.Environment) *router.Router {
	rt := router.New(env, middleware.NoopAdapter)
	mountMetrics(rt, prometheus.NewRegistry())
	view.Mount(rt, view.NewHandler(resp.NewResponder(), nil))

	return rt
}

func mountMetrics(rt *router.Router, reg *prometheus.Registry) {
	rt.Handle(router.Route{
		Path:    MetricsPath,
		Method:  http.MethodGet,
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}).ServeHTTP,
	})
}

func (r *Ranger) EmitEnv() personachat.Environment        { return r.env }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitRegistry() *prometheus.Registry      { return r.reg }
func (r *Ranger) EmitServer() *http.Server                { return r.srv }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }
func (r *Ranger) EmitURL() *url.URL                       { return r.url }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - cancelling the context.Context set by WithContext
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	parent := r.ctx
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(
		parent,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			r.l.Error(err.Error(), nil)
			return err
		}
		return nil

	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
		return r.Shutdown()
	}
}

// Shutdown shuts down the web server, waiting up to 5 seconds for open requests to finish.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
