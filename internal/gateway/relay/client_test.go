package relay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestForwardBuildsRequest(t *testing.T) {
	t.Parallel()

	var got *http.Request
	var gotBody []byte
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer backend.Close()

	c := NewClient(backend.URL, time.Second)
	resp, err := c.Forward(context.Background(), http.MethodPost, "/auth/login", ForwardOptions{
		CookieHeader: "access_token=a; refresh_token=r",
		JSONBody:     []byte(`{"email":"a@b.com"}`),
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, resp.Status)
	require.True(t, resp.OK())
	require.JSONEq(t, `{"ok":true}`, string(resp.Body))
	require.Equal(t, "yes", resp.Header.Get("X-Upstream"))

	require.Equal(t, "/auth/login", got.URL.Path)
	require.Equal(t, "application/json", got.Header.Get("Content-Type"))
	require.Equal(t, "access_token=a; refresh_token=r", got.Header.Get("Cookie"))
	require.JSONEq(t, `{"email":"a@b.com"}`, string(gotBody))
}

func TestForwardFormBody(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.Equal(t, "success", r.Form.Get("status"))
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, time.Second)
	resp, err := c.Forward(context.Background(), http.MethodPost, "/auth/session", ForwardOptions{
		FormBody: url.Values{"status": {"success"}},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
}

func TestForwardOmitsCookieHeaderWhenEmpty(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header["Cookie"]
		require.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, time.Second)
	_, err := c.Forward(context.Background(), http.MethodGet, "/products", ForwardOptions{})
	require.NoError(t, err)
}

func TestForwardConnectionRefused(t *testing.T) {
	t.Parallel()

	// Grab a port that nothing listens on.
	dead := httptest.NewServer(http.NotFoundHandler())
	addr := dead.URL
	dead.Close()

	c := NewClient(addr, time.Second)
	_, err := c.Forward(context.Background(), http.MethodGet, "/auth/verify", ForwardOptions{})
	require.ErrorIs(t, err, ErrBackendUnreachable)
}

func TestForwardTimeout(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, 50*time.Millisecond)
	_, err := c.Forward(context.Background(), http.MethodGet, "/auth/verify", ForwardOptions{})
	require.ErrorIs(t, err, ErrBackendUnreachable)
	require.Contains(t, err.Error(), "timed out")
}

func TestForwardPassesThroughErrorStatus(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false,"message":"Invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, time.Second)
	resp, err := c.Forward(context.Background(), http.MethodPost, "/auth/login", ForwardOptions{})
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.Status)
	require.False(t, resp.OK())
}
