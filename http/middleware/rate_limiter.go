package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 60 * time.Minute
	cleanupInterval = time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst     int
	lastClean time.Time
	limit     rate.Limit
	val       map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors whose newly seen visitors
// are limited to perSec requests every second with bursts of up to burst.
func NewVisitors(perSec float64, burst int) *Visitors {
	return &Visitors{
		burst:     burst,
		lastClean: time.Now().UTC(),
		limit:     rate.Limit(perSec),
		val:       make(map[string]Visitor),
	}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len returns the number of tracked visitors.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
// cleanup sweeps at most once every cleanupInterval.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()

	now := time.Now().UTC()
	if now.Sub(vs.lastClean) < cleanupInterval {
		return
	}

	vs.lastClean = now
	for ip, v := range vs.val {
		if now.Sub(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler,
// writing 429 once a visitor exhausts their limiter.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
//
// If visitors is nil, NoopAdapter returns and this middleware does nothing.
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.Fetch(GetIPAddress(r)).Limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
