package marketsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubGateway fakes the gateway's auth surface: login sets credential
// cookies, session and me answer based on whether those cookies come back.
func stubGateway(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}

		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "acc-1", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "ref-1", Path: "/"})
		_ = json.NewEncoder(w).Encode(AuthResponse{
			Success: true,
			User:    &User{ID: "u1", Email: req.Email, Role: "buyer"},
		})
	})

	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("access_token"); err == nil && c.Value != "" {
			_ = json.NewEncoder(w).Encode(SessionStatus{Success: true, Authenticated: true})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(SessionStatus{Authenticated: false, Error: "Not authenticated"})
	})

	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("access_token"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Unauthorized - Please log in"})
			return
		}
		_ = json.NewEncoder(w).Encode(AuthResponse{Success: true, User: &User{ID: "u1", Email: "s@uni.edu"}})
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", Path: "/", MaxAge: -1})
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Logged out successfully"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginStoresCookies(t *testing.T) {
	t.Parallel()

	srv := stubGateway(t)
	client := NewClient(srv.URL)

	user, err := client.Login(context.Background(), "s@uni.edu", "correct")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "u1", user.ID)

	// The jar now carries the credential cookies, so the session check passes.
	require.True(t, client.IsAuthenticated(context.Background()))
}

func TestClient_LoginFailure(t *testing.T) {
	t.Parallel()

	srv := stubGateway(t)
	client := NewClient(srv.URL)

	_, err := client.Login(context.Background(), "s@uni.edu", "wrong")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_GetUserWithoutSessionReturnsNil(t *testing.T) {
	t.Parallel()

	srv := stubGateway(t)
	client := NewClient(srv.URL)

	user, err := client.GetUser(context.Background())
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestClient_LogoutClearsSession(t *testing.T) {
	t.Parallel()

	srv := stubGateway(t)
	client := NewClient(srv.URL)

	_, err := client.Login(context.Background(), "s@uni.edu", "correct")
	require.NoError(t, err)
	require.True(t, client.IsAuthenticated(context.Background()))

	require.NoError(t, client.Logout(context.Background()))
	require.False(t, client.IsAuthenticated(context.Background()))
}

func TestClient_GatewayDownIsUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // port is now dead

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "s@uni.edu", "correct")
	require.ErrorIs(t, err, ErrGatewayUnreachable)

	ok, err := client.CheckSession(context.Background())
	require.ErrorIs(t, err, ErrGatewayUnreachable)
	require.False(t, ok)
}
