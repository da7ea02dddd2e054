package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted by Middleware when no headers are given.
var DefaultHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// FromRequest returns the client address of r. Headers are checked in order;
// a nil headers slice means DefaultHeaders, an empty one means RemoteAddr
// only. The result is "" when nothing parses.
func FromRequest(r *http.Request, headers ...string) string {
	if headers == nil {
		headers = DefaultHeaders
	}
	for _, h := range headers {
		for _, v := range r.Header.Values(h) {
			for part := range strings.SplitSeq(v, ",") {
				if ip, ok := parse(part); ok {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ip, _ := parse(host)
	return ip
}

func parse(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	// Zones are meaningless outside the receiving host.
	addr, err := netip.ParseAddr(strings.Trim(s, "[]"))
	if err != nil {
		return "", false
	}
	return addr.WithZone("").Unmap().String(), true
}
