package helpers

import (
	"net"
	"net/http"
)

// GetRealIP returns the client address from RemoteAddr.
//
// Forwarding headers are ignored here. When the server runs behind a trusted
// proxy, chi's middleware.RealIP rewrites RemoteAddr before this is called.
func GetRealIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip
	}
	return net.IPv4zero
}
