package http

import (
	"net/http"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/relay"
)

// RefreshHandler serves POST /api/auth/refresh.
type RefreshHandler struct {
	Relay *relay.Client
}

// ServeHTTP godoc
//
//	@Summary		Refresh session
//	@Description	Exchanges the refresh-token cookie for a rotated credential pair.
//	@Description	Backend failures are relayed with their original status, not rewritten.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	Response	"rotated cookies attached"
//	@Failure		401	{object}	Response	"no refresh token, or backend rejected it"
//	@Failure		503	{object}	Response	"backend unreachable"
//	@Header			200	{string}	Set-Cookie	"rotated access_token, refresh_token"
//	@Router			/api/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	refreshToken := cookies.Get(r, cookies.RefreshTokenName)
	if refreshToken == "" {
		writeMessage(w, http.StatusUnauthorized, "No refresh token")
		return
	}

	resp, err := h.Relay.Forward(r.Context(), http.MethodPost, "/auth/refresh", relay.ForwardOptions{
		CookieHeader: cookies.Header(domain.CredentialPair{RefreshToken: refreshToken}),
	})
	if err != nil {
		writeRelayError(r.Context(), w, err)
		return
	}

	// Success and failure alike relay the backend's status and body verbatim.
	relayBody(w, resp)
}
