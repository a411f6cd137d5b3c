package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/personachat"
)

// RequestIDHeader carries the ID of a request to and from clients.
const RequestIDHeader = "X-Request-Id"

// RequestID stashes an ID for the request under personachat.RequestIDKey
// and echoes it in the RequestIDHeader of the response.
//
// A UUID the client sent in RequestIDHeader is kept, e.g. so a navigation
// and the page it fetches share one ID; anything else is replaced with a new UUID.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.New()
			}

			w.Header().Set(RequestIDHeader, id.String())
			ctx := context.WithValue(r.Context(), personachat.RequestIDKey, id.String())
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
