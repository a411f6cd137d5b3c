package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/personachat"
)

// hstsValue asks browsers to use HTTPS for two years.
const hstsValue = "max-age=63072000; includeSubDomains"

// ForceHTTPS redirects requests made over HTTP to the same URL over HTTPS,
// and marks responses to HTTPS requests with "Strict-Transport-Security".
// In development, requests pass through untouched.
//
// A request was made over HTTPS when the server terminated TLS itself,
// or when the first proxy in "X-Forwarded-Proto" says so.
func ForceHTTPS(env personachat.Environment) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if env.IsDevelopment() {
				handler.ServeHTTP(w, r)
				return
			}

			if isHTTPS(r) {
				w.Header().Set("Strict-Transport-Security", hstsValue)
				handler.ServeHTTP(w, r)
				return
			}

			u := *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}

func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}
