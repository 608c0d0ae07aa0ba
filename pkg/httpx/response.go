package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code. Content-Type
// and no-store cache headers are set automatically; every response from the
// gateway carries session material or per-user data, so nothing is cacheable.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// CopySetCookies forwards every Set-Cookie header from a backend response to
// the outgoing client response without coalescing. net/http enumerates
// repeated headers natively, so the multi-value path always applies; the
// single-header fallback exists for responses normalised by an intermediary
// into one merged value.
func CopySetCookies(dst http.ResponseWriter, src http.Header) {
	values := src.Values("Set-Cookie")
	if len(values) == 0 {
		if merged := src.Get("Set-Cookie"); merged != "" {
			dst.Header().Add("Set-Cookie", merged)
		}
		return
	}
	for _, v := range values {
		dst.Header().Add("Set-Cookie", v)
	}
}
