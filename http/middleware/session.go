package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under personachat.SessionKey.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// NOTE: a session failing to decode, e.g. after rotating keys,
			// is still returned as a fresh session, so the error is ignored.
			s, _ := store.GetSession(r)
			ctx := context.WithValue(r.Context(), personachat.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
