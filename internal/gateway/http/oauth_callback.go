package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/unimarket/gateway/pkg/httpx"
	"github.com/unimarket/gateway/pkg/slogx"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/relay"
)

// OAuthCallbackHandler serves GET /api/auth/oauth/callback, the landing
// point the backend redirects to after a completed provider flow.
//
// Two handoff shapes are supported: tokens carried in the query string,
// or tokens already set as cookies on the backend's redirect which we
// exchange via a session probe. Either way the browser always ends up
// back on the frontend callback page, success or not.
type OAuthCallbackHandler struct {
	Relay       *relay.Client
	Jar         cookies.Jar
	FrontendURL string
}

// ServeHTTP godoc
//
//	@Summary		OAuth provider callback
//	@Description	Accepts the backend's post-OAuth redirect, installs session cookies,
//	@Description	and redirects the browser to the frontend callback page.
//	@Tags			Auth
//	@Success		302	{string}	string	"redirect to frontend"
//	@Router			/api/auth/oauth/callback [get].
func (h *OAuthCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The browser is mid-redirect here, so a panic must still land it
	// somewhere sensible rather than on a blank 500 page.
	defer func() {
		if rec := recover(); rec != nil {
			slogx.FromContext(r.Context()).Error("oauth callback panicked", "panic", rec)
			h.redirectError(w, r, "Authentication failed, please try again")
		}
	}()

	if msg := r.URL.Query().Get("error"); msg != "" {
		h.redirectError(w, r, msg)
		return
	}

	pair := pairFromQuery(r.URL.Query())
	if !pair.IsZero() {
		if !pair.HasAccess() || !pair.HasRefresh() {
			h.redirectError(w, r, "Incomplete token pair from provider")
			return
		}
		h.Jar.SetCredentials(w, pair)
		h.redirectSuccess(w, r)
		return
	}

	// No tokens in the query: the backend set them on its own domain
	// during the redirect chain. Probe the session with whatever cookies
	// arrived and re-home any Set-Cookie headers onto ours.
	resp, err := h.Relay.Forward(r.Context(), http.MethodGet, "/auth/session", relay.ForwardOptions{
		CookieHeader: r.Header.Get("Cookie"),
	})
	if err != nil {
		slogx.FromContext(r.Context()).Warn("oauth session probe failed", "error", err)
		h.redirectError(w, r, "Marketplace backend is unreachable, please try again later")
		return
	}
	if !resp.OK() {
		h.redirectError(w, r, "Authentication failed")
		return
	}

	httpx.CopySetCookies(w, resp.Header)
	h.redirectSuccess(w, r)
}

func (h *OAuthCallbackHandler) redirectSuccess(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.FrontendURL+"/auth/oauth-callback?status=success", http.StatusFound)
}

func (h *OAuthCallbackHandler) redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	target := fmt.Sprintf("%s/auth/oauth-callback?message=%s", h.FrontendURL, url.QueryEscape(msg))
	http.Redirect(w, r, target, http.StatusFound)
}

// pairFromQuery pulls a credential pair out of a callback query string,
// tolerating both naming conventions providers have been seen to use.
func pairFromQuery(q url.Values) domain.CredentialPair {
	access := q.Get("access_token")
	if access == "" {
		access = q.Get("token")
	}
	refresh := q.Get("refresh_token")
	if refresh == "" {
		refresh = q.Get("refresh")
	}
	return domain.CredentialPair{AccessToken: access, RefreshToken: refresh}
}
