package http

import (
	"net/http"

	"github.com/unimarket/gateway/pkg/httpx"
	"github.com/unimarket/gateway/pkg/slogx"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/relay"
)

// SessionResponse reports whether the caller currently holds a live session.
type SessionResponse struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error,omitempty"`
}

// SessionHandler serves GET /api/auth/session.
//
// This is a cheap liveness probe for the browser, not a guarded call:
// a missing or stale access token answers 401 without touching the
// backend or attempting a refresh. Clients that want a refresh use
// POST /api/auth/refresh explicitly.
type SessionHandler struct {
	Relay *relay.Client
}

// ServeHTTP godoc
//
//	@Summary		Check session
//	@Description	Verifies the access-token cookie against the backend.
//	@Description	Never refreshes; a 401 here means "call refresh or log in".
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	SessionResponse
//	@Failure		503	{object}	SessionResponse
//	@Router			/api/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	accessToken := cookies.Get(r, cookies.AccessTokenName)
	if accessToken == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, SessionResponse{
			Authenticated: false,
			Error:         "Not authenticated",
		})
		return
	}

	resp, err := h.Relay.Forward(r.Context(), http.MethodGet, "/auth/verify", relay.ForwardOptions{
		CookieHeader: cookies.Header(domain.CredentialPair{AccessToken: accessToken}),
	})
	if err != nil {
		slogx.FromContext(r.Context()).Warn("session check failed", "error", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, SessionResponse{
			Authenticated: false,
			Error:         "Marketplace backend is unreachable, please try again later",
		})
		return
	}

	if !resp.OK() {
		httpx.WriteJSON(w, http.StatusUnauthorized, SessionResponse{
			Authenticated: false,
			Error:         "Session expired",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SessionResponse{
		Success:       true,
		Authenticated: true,
	})
}
