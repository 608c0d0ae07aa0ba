package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/unimarket/gateway/internal/gateway/relay"
	"github.com/unimarket/gateway/pkg/httpx"
	"github.com/unimarket/gateway/pkg/slogx"
)

// Response is the gateway's JSON envelope. Message is set on failures and on
// operations with no payload of their own.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, Response{Success: code < 400, Message: msg})
}

// relayBody passes a backend response through verbatim: status, Set-Cookie
// headers, and raw body. The backend speaks JSON, so the Content-Type is
// pinned rather than copied.
func relayBody(w http.ResponseWriter, resp *relay.BackendResponse) {
	httpx.CopySetCookies(w, resp.Header)
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

// forwardSetCookies adds Set-Cookie values accumulated by a refresh round
// trip so the browser picks up the rotated pair.
func forwardSetCookies(w http.ResponseWriter, values []string) {
	for _, v := range values {
		w.Header().Add("Set-Cookie", v)
	}
}

// writeRelayError maps the relay error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a bug; it is logged and surfaced as a generic 500,
// never a raw stack trace.
func writeRelayError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, relay.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - Please log in")
	case errors.Is(err, relay.ErrBackendUnreachable):
		slogx.FromContext(ctx).Warn("backend unreachable", "err", err)
		writeMessage(w, http.StatusServiceUnavailable, "Marketplace backend is unreachable, please try again later")
	default:
		slogx.FromContext(ctx).Error("relay call failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
