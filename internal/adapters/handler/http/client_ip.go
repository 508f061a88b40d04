package http

import (
	"net"
	"net/http"
	"strings"
)

// clientIP extracts the best-effort client address: first entry of the
// X-Forwarded-For chain, else X-Real-IP, else the RemoteAddr host, with a
// loopback fallback. The result is only ever hashed, never stored.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return "127.0.0.1"
	}
	return host
}
