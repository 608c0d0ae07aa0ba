package http

import (
	"net/http"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/relay"
	"github.com/unimarket/gateway/pkg/slogx"
)

// LogoutHandler serves POST /api/auth/logout.
type LogoutHandler struct {
	Relay *relay.Client
	Jar   cookies.Jar
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Notifies the backend (best effort) and clears both credential cookies.
//	@Description	Local session termination never depends on backend availability.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	Response	"always succeeds"
//	@Header			200	{string}	Set-Cookie	"access_token and refresh_token wiped (Max-Age=0)"
//	@Router			/api/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	creds := cookies.Credentials(r)

	// Best-effort backend notification so server-side token state can be
	// revoked. Failures, including an unreachable backend, do not change the
	// outcome.
	if !creds.IsZero() {
		_, err := h.Relay.Forward(r.Context(), http.MethodPost, "/auth/logout", relay.ForwardOptions{
			CookieHeader: cookies.Header(creds),
		})
		if err != nil {
			slogx.FromContext(r.Context()).Warn("backend logout failed, clearing cookies anyway", "err", err)
		}
	}

	h.Jar.ClearCredentials(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}
