package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded-for chain wins",
			forwarded:  "203.0.113.7, 10.0.0.1",
			realIP:     "198.51.100.2",
			remoteAddr: "192.0.2.1:4321",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded-for entries are trimmed",
			forwarded:  "  203.0.113.7 ,10.0.0.1",
			remoteAddr: "192.0.2.1:4321",
			want:       "203.0.113.7",
		},
		{
			name:       "real-ip when no forwarded-for",
			realIP:     "198.51.100.2",
			remoteAddr: "192.0.2.1:4321",
			want:       "198.51.100.2",
		},
		{
			name:       "remote addr host",
			remoteAddr: "192.0.2.1:4321",
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.1",
			want:       "192.0.2.1",
		},
		{
			name: "loopback fallback",
			want: "127.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
