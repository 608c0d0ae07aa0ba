package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/unimarket/gateway/internal/gateway/relay"
)

// LoginHandler serves POST /api/auth/login.
type LoginHandler struct {
	Relay *relay.Client
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Forwards credentials to the marketplace backend and relays the issued
//	@Description	credential cookies (access_token, refresh_token) back to the browser.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LoginRequest	true	"email and password"
//	@Success		200		{object}	Response		"success, user payload passed through"
//	@Failure		400		{object}	Response		"missing email or password"
//	@Failure		401		{object}	Response		"invalid credentials (backend status relayed)"
//	@Failure		503		{object}	Response		"backend unreachable"
//	@Header			200		{string}	Set-Cookie		"access_token, refresh_token"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var req LoginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// Forward the client's JSON verbatim; the backend owns validation beyond
	// required-field checks.
	resp, err := h.Relay.Forward(r.Context(), http.MethodPost, "/auth/login", relay.ForwardOptions{
		JSONBody: body,
	})
	if err != nil {
		writeRelayError(r.Context(), w, err)
		return
	}

	relayBody(w, resp)
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
