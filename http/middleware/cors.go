package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// corsMaxAge is how many seconds browsers may cache a preflight response.
const corsMaxAge = 600

// CORS lets pages served from origins read responses to GET requests,
// e.g. a client shell on another host calling the navigation endpoint.
// The RequestIDHeader is exposed to those pages.
// The handler including this middleware must also handle the http.MethodOptions method
// and not just the HTTP method it's designed for.
//
// Empty origins are skipped. If none remain, NoopAdapter returns and this middleware does nothing.
func CORS(origins ...string) Adapter {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	if len(allowed) == 0 {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{"Accept", "Content-Type", RequestIDHeader}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		handlers.AllowedOrigins(allowed),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
		handlers.MaxAge(corsMaxAge),
	)
}
