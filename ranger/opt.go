package ranger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/auth"
	"github.com/xy-planning-network/personachat/http/middleware"
	"github.com/xy-planning-network/personachat/http/resp"
	"github.com/xy-planning-network/personachat/http/router"
	"github.com/xy-planning-network/personachat/http/session"
	"github.com/xy-planning-network/personachat/http/template"
	"github.com/xy-planning-network/personachat/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithEnv is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// The *router.Router is only exposed when the closure it returns is called,
// after the session store and metrics its middlewares need are configured.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithAuth exposes the provided *auth.Service to the personachat app,
// offering a sign-in link on the Auth view.
func WithAuth(svc *auth.Service) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.auth = svc
		return nil, nil
	}
}

// WithBaseURL sets the URL the personachat app is reached at.
func WithBaseURL(u string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return nil, fmt.Errorf("%w: base URL: %s", ErrNotValid, err)
		}

		rng.url = parsed
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the personachat app.
// Cancelling ctx stops [*Ranger.Guide].
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	e := personachat.Environment(envVar)
	if err := e.Valid(); err == nil {
		return func(rng *Ranger) (OptFollowup, error) {
			rng.env = e
			return nil, nil
		}
	}

	return func(rng *Ranger) (OptFollowup, error) {
		rng.env = personachat.EnvVarOrEnv(environmentEnvVar, personachat.Development)
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the personachat app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithLogOutput sets where the default loggers write to, os.Stdout otherwise.
func WithLogOutput(w io.Writer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.logOut = w
		return nil, nil
	}
}

// WithParser exposes the provided template.Parser to the personachat app.
func WithParser(p template.Parser) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.p = p
		return nil, nil
	}
}

// WithRegistry registers request metrics in reg
// and serves reg's metrics on /metrics.
func WithRegistry(reg *prometheus.Registry) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.reg = reg
		rng.metrics = middleware.NewMetrics(reg, metricsNamespace)
		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the personachat app.
func WithResponder(r *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Responder = r
			rng.l.Debug("using responder", nil)

			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the personachat app
// with the default middlewares applied to every request.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			r.OnEveryRequest(defaultMiddlewares(rng.env, rng.sessions, rng.metrics)...)
			rng.Router = r
			rng.l.Debug(fmt.Sprintf("using router %T", r), nil)

			return nil
		}, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the personachat app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.sessions = store
		return nil, nil
	}
}

// WithServer exposes the *http.Server to the personachat app.
// The Ranger's router handles its requests.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}
