package http

import (
	"net/http"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/relay"
)

// MeHandler serves GET /api/auth/me.
type MeHandler struct {
	Relay *relay.Client
}

// ServeHTTP godoc
//
//	@Summary		Current user profile
//	@Description	Fetches the authenticated user's profile from the backend.
//	@Description	Transparently refreshes an expired access token once before giving up.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	Response
//	@Failure		401	{object}	Response
//	@Failure		503	{object}	Response
//	@Router			/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Relay.DoGuarded(r.Context(), http.MethodGet, "/auth/me", nil, cookies.Credentials(r))
	if err != nil {
		writeRelayError(r.Context(), w, err)
		return
	}

	forwardSetCookies(w, result.RefreshSetCookies)
	relayBody(w, result.Resp)
}
