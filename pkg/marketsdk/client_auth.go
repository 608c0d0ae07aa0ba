package marketsdk

import (
	"context"
	"errors"
	"net/http"
)

// Login authenticates with email and password. On success the gateway's
// credential cookies land in the jar and the relayed user profile is
// returned.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth); err != nil {
		return nil, err
	}
	return auth.User, nil
}

// Signup registers a new account. Like Login, a successful signup leaves the
// session cookies in the jar.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", req)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth); err != nil {
		return nil, err
	}
	return auth.User, nil
}

// Logout ends the session. The gateway clears its cookies even when the
// backend call behind it fails, so Logout only errors on transport problems.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// Refresh explicitly rotates the credential pair. Most callers never need
// this; authenticated calls refresh transparently inside the gateway.
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// CheckSession reports whether the jar currently holds a live session.
// A 401 is a normal answer, not an error; errors mean the check itself
// could not run.
func (c *Client) CheckSession(ctx context.Context) (bool, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/auth/session", nil)
	if err != nil {
		return false, err
	}

	var status SessionStatus
	if err := decodeJSON(resp, &status); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return false, nil
		}
		return false, err
	}
	return status.Authenticated, nil
}

// IsAuthenticated is CheckSession with failure collapsed to false. Use it
// where the caller only wants a yes/no and treats outages as logged-out.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	ok, err := c.CheckSession(ctx)
	return err == nil && ok
}

// GetUser fetches the authenticated user's profile, riding the gateway's
// refresh cycle. Returns nil (no error) when there is no session, mirroring
// how UI code treats "logged out" as a state rather than a failure.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return nil, nil
		}
		return nil, err
	}
	return auth.User, nil
}
