package relay

import (
	"context"
	"net/http"
	"time"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/pkg/slogx"
)

// GuardedResult is the outcome of a guarded backend call.
type GuardedResult struct {
	// Resp is the terminal backend response: 2xx, or a non-auth error the
	// handler passes through verbatim. Never a 401; those surface as
	// ErrUnauthenticated instead.
	Resp *BackendResponse

	// RefreshSetCookies holds the Set-Cookie values issued by the refresh
	// round trip, if one happened. Handlers must forward them so the browser
	// picks up the rotated pair.
	RefreshSetCookies []string
}

// DoGuarded performs an authenticated backend call with the bounded
// refresh-and-retry cycle applied:
//
//   - no credentials at all: ErrUnauthenticated without touching the backend;
//   - an access token whose exp claim is already past (best-effort unverified
//     parse): refreshed up front to save the guaranteed 401 round trip;
//   - backend 401 with a refresh token on hand: one refresh, then exactly one
//     retry of the original call using the rotated pair parsed out of the
//     refresh response's Set-Cookie headers;
//   - refresh rejected, or the retry 401s again: ErrUnauthenticated.
//
// At most one refresh happens per invocation regardless of path taken, so a
// backend that always 401s costs two round trips, never a loop.
func (c *Client) DoGuarded(
	ctx context.Context,
	method, path string,
	jsonBody []byte,
	creds domain.CredentialPair,
) (*GuardedResult, error) {
	if creds.IsZero() {
		return nil, ErrUnauthenticated
	}

	log := slogx.FromContext(ctx)
	refreshed := false
	var refreshSetCookies []string

	// Proactive refresh only when the token itself proves it is expired.
	// Opaque tokens skip this and rely on the 401 path below.
	if creds.HasAccess() && creds.HasRefresh() &&
		accessTokenExpired(creds.AccessToken, time.Now()) {
		rotated, setCookies, err := c.refreshCredentials(ctx, creds)
		if err != nil {
			return nil, err
		}
		log.Debug("access token expired, refreshed before forwarding", "path", path)
		creds = creds.Merge(rotated)
		refreshSetCookies = setCookies
		refreshed = true
	}

	resp, err := c.Forward(ctx, method, path, ForwardOptions{
		CookieHeader: cookies.Header(creds),
		JSONBody:     jsonBody,
	})
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized && !refreshed && creds.HasRefresh() {
		rotated, setCookies, err := c.refreshCredentials(ctx, creds)
		if err != nil {
			return nil, err
		}
		log.Debug("backend rejected access token, retrying after refresh", "path", path)
		creds = creds.Merge(rotated)
		refreshSetCookies = setCookies

		resp, err = c.Forward(ctx, method, path, ForwardOptions{
			CookieHeader: cookies.Header(creds),
			JSONBody:     jsonBody,
		})
		if err != nil {
			return nil, err
		}
	}

	if resp.Status == http.StatusUnauthorized {
		return nil, ErrUnauthenticated
	}

	return &GuardedResult{Resp: resp, RefreshSetCookies: refreshSetCookies}, nil
}

// refreshCredentials exchanges the refresh token for a rotated pair. The new
// tokens are parsed out of the backend's Set-Cookie headers; the raw header
// values are returned alongside so they can be forwarded to the browser.
func (c *Client) refreshCredentials(
	ctx context.Context,
	creds domain.CredentialPair,
) (domain.CredentialPair, []string, error) {
	resp, err := c.Forward(ctx, http.MethodPost, "/auth/refresh", ForwardOptions{
		CookieHeader: cookies.Header(domain.CredentialPair{RefreshToken: creds.RefreshToken}),
	})
	if err != nil {
		// Unreachable backend stays a service failure, not an auth failure.
		return domain.CredentialPair{}, nil, err
	}
	if !resp.OK() {
		return domain.CredentialPair{}, nil, ErrUnauthenticated
	}

	return cookies.Rotated(resp.Header), resp.Header.Values("Set-Cookie"), nil
}
