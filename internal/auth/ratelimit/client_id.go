package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownClient buckets every request whose origin cannot be identified.
// All such clients share one counter; that degradation is accepted.
const UnknownClient = "unknown"

// ClientID derives the rate-limit key for a request: the reverse proxy's
// client IP header first, then the first X-Forwarded-For hop, then the
// shared unknown bucket.
func ClientID(h http.Header) string {
	if ip := h.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if forwarded := h.Get("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	return UnknownClient
}
