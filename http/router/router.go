package router

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/middleware"
)

// A Route maps a path pattern and HTTP method to an [http.HandlerFunc].
// View names what the handler renders; it labels logs and metrics for requests the Route matches.
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// An empty Method matches any method.
// A GET Route matches HEAD requests too.
type Route struct {
	Path        string
	Method      string
	View        string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// registered pairs a Route with its compiled pattern and the *mux.Route serving it.
type registered struct {
	route   Route
	pattern pattern
	mr      *mux.Route
}

// table holds every Route registered on a Router and its subrouters, in registration order.
type table struct {
	routes []registered
	sync.RWMutex
}

// Router routes requests to the first registered Route whose pattern matches the request path.
type Router struct {
	Env           personachat.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	prefix        string
	r             *mux.Router
	table         *table
}

// New constructs a [*Router] for the given environment.
// logReq wraps every handler the Router calls; pass [middleware.NoopAdapter] to skip request logging.
//
// Request paths are matched as sent, without cleaning dot segments,
// so serving a path selects the same Route Resolve does.
func New(env personachat.Environment, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{Env: env, logReq: logReq, r: mux.NewRouter().SkipClean(true), table: new(table)}
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
// Routes registered before calling CatchAll still take precedence.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(handler),
			append([]middleware.Adapter{r.logReq}, r.everyReqStack...)...,
		),
	)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		append([]middleware.Adapter{r.logReq}, r.everyReqStack...)...,
	)
}

// HandleRoutes registers the set of Routes on the Router in order
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
//
// HandleRoutes panics if a Route has no handler, an invalid Path,
// or can never match because a Route registered earlier matches every path it does.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	r.table.Lock()
	defer r.table.Unlock()

	for _, route := range routes {
		route.Path = r.prefix + route.Path
		if r.prefix != "" && route.Path != "/" {
			route.Path = strings.TrimSuffix(route.Path, "/")
		}

		p, err := r.table.admit(route)
		if err != nil {
			panic(fmt.Sprintf("router: %s", err))
		}

		mws := []middleware.Adapter{withMatch(route, p), r.logReq}
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)

		mr := r.r.NewRoute().
			MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
				_, ok := p.match(req.URL.EscapedPath())
				return ok
			}).
			Handler(handler)

		if methods := allowedMethods(route.Method); len(methods) > 0 {
			mr.Methods(methods...)
		}

		r.table.routes = append(r.table.routes, registered{route: route, pattern: p, mr: mr})
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Routes registered before calling OnEveryRequest are not affected.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// Resolve selects the Route registered for method and the path of target,
// ignoring any query or fragment, without calling its handler.
//
// If no Route matches the path, ErrNotFound returns.
// If a Route matches the path but not the method, ErrMethodNotAllowed returns.
func (r *Router) Resolve(method, target string) (Match, error) {
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %s", ErrNotFound, err)
	}

	var rm mux.RouteMatch
	matched := r.r.Match(req, &rm)
	switch {
	case errors.Is(rm.MatchErr, mux.ErrMethodMismatch):
		return Match{}, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, method, req.URL.Path)
	case !matched || rm.MatchErr != nil:
		return Match{}, fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	}

	r.table.RLock()
	defer r.table.RUnlock()

	for _, reg := range r.table.routes {
		if reg.mr != rm.Route {
			continue
		}

		params, _ := reg.pattern.match(req.URL.EscapedPath())
		return Match{Route: reg.route, Params: params}, nil
	}

	return Match{}, fmt.Errorf("%w: %s is not served by a Route", ErrNotFound, req.URL.Path)
}

// Routes lists the Routes registered on the Router and its subrouters, in registration order.
func (r *Router) Routes() []Route {
	r.table.RLock()
	defer r.table.RUnlock()

	routes := make([]Route, len(r.table.routes))
	for i, reg := range r.table.routes {
		routes[i] = reg.route
	}

	return routes
}

// ServeAssets serves the files in filesys for requests to paths beginning with prefix,
// telling clients to cache them.
func (r *Router) ServeAssets(prefix string, filesys fs.FS) {
	prefix = "/" + strings.Trim(prefix, "/") + "/"

	r.r.PathPrefix(prefix).Methods(http.MethodGet, http.MethodHead).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(http.FS(filesys))),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
// Routes registered on it join the routes of r,
// so share the ordering and shadowing rules of r.
//
// e.g., r.Subrouter("/api") handles requests to endpoints like /api/navigate
func (r *Router) Subrouter(prefix string) *Router {
	prefix = "/" + strings.Trim(prefix, "/")

	return &Router{
		Env:           r.Env,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
		logReq:        r.logReq,
		prefix:        strings.TrimSuffix(r.prefix+prefix, "/"),
		r:             r.r,
		table:         r.table,
	}
}

// Validate checks routes against the rules HandleRoutes panics on,
// without registering them.
func Validate(routes ...Route) error {
	t := new(table)
	for _, route := range routes {
		p, err := t.admit(route)
		if err != nil {
			return err
		}

		t.routes = append(t.routes, registered{route: route, pattern: p})
	}

	return nil
}

// admit compiles route's pattern and checks that no Route in t shadows it.
//
// The caller holds the lock on t.
func (t *table) admit(route Route) (pattern, error) {
	if route.Handler == nil {
		return pattern{}, fmt.Errorf("%w: %s has no handler", personachat.ErrMissingData, route.Path)
	}

	p, err := parsePattern(route.Path)
	if err != nil {
		return pattern{}, err
	}

	for _, reg := range t.routes {
		if !methodsOverlap(reg.route.Method, route.Method) || !reg.pattern.covers(p) {
			continue
		}

		return pattern{}, fmt.Errorf("%w: %s %q by %s %q", ErrShadowed, route.Method, p, reg.route.Method, reg.pattern)
	}

	return p, nil
}

// allowedMethods lists the methods a Route registered for method matches.
func allowedMethods(method string) []string {
	switch method = strings.ToUpper(method); method {
	case "":
		return nil
	case http.MethodGet:
		return []string{http.MethodGet, http.MethodHead}
	default:
		return []string{method}
	}
}

// methodsOverlap reports whether a request could be matched by methods a and b.
func methodsOverlap(a, b string) bool {
	if a == "" || b == "" {
		return true
	}

	for _, m := range allowedMethods(a) {
		for _, n := range allowedMethods(b) {
			if m == n {
				return true
			}
		}
	}

	return false
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
