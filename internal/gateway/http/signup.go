package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/unimarket/gateway/internal/gateway/relay"
)

// SignupHandler serves POST /api/auth/signup.
type SignupHandler struct {
	Relay *relay.Client
}

// ServeHTTP godoc
//
//	@Summary		Signup
//	@Description	Forwards a registration request to the marketplace backend and relays
//	@Description	the issued credential cookies back to the browser.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SignupRequest	true	"registration details"
//	@Success		200		{object}	Response		"success, user payload passed through"
//	@Failure		400		{object}	Response		"missing required fields"
//	@Failure		409		{object}	Response		"account exists (backend status relayed)"
//	@Failure		503		{object}	Response		"backend unreachable"
//	@Header			200		{string}	Set-Cookie		"access_token, refresh_token"
//	@Router			/api/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var req SignupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.Relay.Forward(r.Context(), http.MethodPost, "/auth/signup", relay.ForwardOptions{
		JSONBody: body,
	})
	if err != nil {
		writeRelayError(r.Context(), w, err)
		return
	}

	relayBody(w, resp)
}

// SignupRequest is the registration form payload. Fields beyond the required
// pair are forwarded untouched.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
