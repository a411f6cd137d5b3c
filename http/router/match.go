package router

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/personachat"
)

// Params are the named path parameters extracted from a request path.
// A wildcard's suffix is stored under "*".
type Params map[string]string

// Get returns the value of the named parameter or the empty string.
func (p Params) Get(name string) string { return p[name] }

// A Match is the Route selected for a path along with the parameters extracted from it.
type Match struct {
	Route  Route
	Params Params
}

// MatchFromContext retrieves the Match the Router stored in ctx before calling a Route's handler.
func MatchFromContext(ctx context.Context) (Match, bool) {
	m, ok := ctx.Value(personachat.RouteMatchKey).(Match)
	return m, ok
}

// Param retrieves the named parameter of the Match stored in r's context.
func Param(r *http.Request, name string) string {
	m, ok := MatchFromContext(r.Context())
	if !ok {
		return ""
	}

	return m.Params.Get(name)
}

// withMatch stores the Match for route in the request context,
// along with the name of the view route selects.
func withMatch(route Route, p pattern) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, _ := p.match(r.URL.EscapedPath())

			ctx := context.WithValue(r.Context(), personachat.RouteMatchKey, Match{Route: route, Params: params})
			if route.View != "" {
				ctx = context.WithValue(ctx, personachat.ViewKey, route.View)
			}

			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
