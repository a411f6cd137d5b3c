package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/personachat"
)

// unknownIP stands in for a client whose address cannot be parsed.
const unknownIP = "0.0.0.0"

// forwardedHeaders lists the headers a proxy reports the client address in, by preference.
var forwardedHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic lists IANA special-purpose IPv4 blocks netip.Addr.IsPrivate leaves out.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stashes the client address of the request,
// as reported by GetIPAddress, under personachat.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r)
			h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), personachat.IpAddrKey, ip)))
		})
	}
}

// GetIPAddress returns the address of the client that sent r.
//
// An address InjectIPAddress stashed already is reused.
// Behind a proxy, it is the rightmost public address in "X-Forwarded-For", or else "X-Real-Ip",
// i.e. the one the proxy saw.
// Otherwise, it is the host of r.RemoteAddr.
func GetIPAddress(r *http.Request) string {
	if ip, ok := r.Context().Value(personachat.IpAddrKey).(string); ok && ip != "" {
		return ip
	}

	for _, h := range forwardedHeaders {
		if addr, ok := lastPublic(r.Header.Get(h)); ok {
			return addr.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return unknownIP
	}

	return addr.Unmap().String()
}

// lastPublic walks the comma-separated addresses in val from right to left,
// returning the first public one.
func lastPublic(val string) (netip.Addr, bool) {
	addrs := strings.Split(val, ",")
	for i := len(addrs) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(addrs[i]))
		if err != nil {
			continue
		}

		if addr = addr.Unmap(); isPublic(addr) {
			return addr, true
		}
	}

	return netip.Addr{}, false
}

func isPublic(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
