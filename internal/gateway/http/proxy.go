package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/relay"
)

// backendPath maps a gateway request path onto the backend's route space
// by stripping the /api prefix and carrying the raw query through.
func backendPath(r *http.Request) string {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	if path == "" {
		path = "/"
	}
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}
	return path
}

// ProxyHandler relays authenticated resource requests (cart, orders,
// pickup slots, user profile) to the backend under the guarded cycle:
// expired access tokens are refreshed once and the call retried before
// a 401 reaches the browser.
type ProxyHandler struct {
	Relay *relay.Client
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(body) == 0 {
		body = nil
	}

	result, err := h.Relay.DoGuarded(r.Context(), r.Method, backendPath(r), body, cookies.Credentials(r))
	if err != nil {
		writeRelayError(r.Context(), w, err)
		return
	}

	forwardSetCookies(w, result.RefreshSetCookies)
	relayBody(w, result.Resp)
}

// PublicProxyHandler relays unauthenticated browsing requests (product
// catalogue). Credentials are still forwarded when present so the backend
// can personalise results, but their absence is not an error and no
// refresh cycle runs.
type PublicProxyHandler struct {
	Relay *relay.Client
}

func (h *PublicProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(body) == 0 {
		body = nil
	}

	resp, err := h.Relay.Forward(r.Context(), r.Method, backendPath(r), relay.ForwardOptions{
		CookieHeader: cookies.Header(cookies.Credentials(r)),
		JSONBody:     body,
	})
	if err != nil {
		writeRelayError(r.Context(), w, err)
		return
	}

	relayBody(w, resp)
}
