package middleware

import (
	"net/http"

	"github.com/xy-planning-network/personachat"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	// NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter passes the request to the next handler without doing anything.
func NoopAdapter(h http.Handler) http.Handler { return h }

// viewName retrieves the name of the view the router selected for r, if any.
func viewName(r *http.Request) string {
	v, _ := r.Context().Value(personachat.ViewKey).(string)
	return v
}
