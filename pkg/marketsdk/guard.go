package marketsdk

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Guard returns middleware that gates a handler behind a live session.
//
// Every request's cookies are checked against the gateway's session
// endpoint. Unauthenticated browsers are redirected to loginPath with the
// original path and query preserved in a redirect parameter, so the login
// page can send them back after authenticating:
//
//	/auth/login?redirect=%2Faccount%2Forders
//
// When the session check itself cannot run (gateway or backend down) the
// request is let through: the page's own API calls will surface the outage,
// which beats bouncing a possibly-logged-in user to the login screen.
func Guard(gatewayURL, loginPath string) func(http.Handler) http.Handler {
	client := &http.Client{Timeout: 5 * time.Second}
	sessionURL := strings.TrimSuffix(gatewayURL, "/") + "/api/auth/session"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated, checkRan := checkSessionWithCookies(client, sessionURL, r)
			if checkRan && !authenticated {
				target := loginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkSessionWithCookies replays the incoming request's cookies against the
// gateway session endpoint. The second return is false when the check could
// not complete.
func checkSessionWithCookies(client *http.Client, sessionURL string, r *http.Request) (authenticated, checkRan bool) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, sessionURL, nil)
	if err != nil {
		return false, false
	}
	if cookie := r.Header.Get("Cookie"); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return false, false
	}
	if resp.StatusCode != http.StatusOK {
		return false, true
	}

	var status SessionStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false, true
	}
	return status.Authenticated, true
}
