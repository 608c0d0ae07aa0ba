package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/unimarket/gateway/pkg/cryptox"
)

// Token lifetimes mirror the real backend: 45 minute access, 7 day refresh.
const (
	accessTTL  = 45 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type user struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

type session struct {
	userEmail string
	expiresAt time.Time
}

type cartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Server holds all state in memory behind one mutex. Throughput is not the
// point; faithful auth semantics are.
type Server struct {
	mu            sync.Mutex
	users         map[string]*user    // by email
	accessTokens  map[string]session  // opaque token -> session
	refreshTokens map[string]session  // opaque token -> session
	carts         map[string][]cartLine // by user email

	mux *http.ServeMux
}

func NewServer() *Server {
	s := &Server{
		users:         make(map[string]*user),
		accessTokens:  make(map[string]session),
		refreshTokens: make(map[string]session),
		carts:         make(map[string][]cartLine),
		mux:           http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /auth/signup", s.handleSignup)
	s.mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	s.mux.HandleFunc("POST /auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /auth/verify", s.handleVerify)
	s.mux.HandleFunc("GET /auth/session", s.handleVerify)
	s.mux.HandleFunc("GET /auth/me", s.handleMe)
	s.mux.HandleFunc("POST /cart/merge", s.handleCartMerge)
	s.mux.HandleFunc("GET /cart", s.handleGetCart)
	s.mux.HandleFunc("GET /products", s.handleProducts)
	s.mux.HandleFunc("GET /orders", s.handleOrders)
	s.mux.HandleFunc("GET /slots/{userId}", s.handleSlots)
	s.mux.HandleFunc("GET /users/{id}/profile", s.handleUserProfile)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "message": msg})
}

// issueTokens mints a fresh opaque pair for the user and sets both cookies.
// Callers must hold s.mu.
func (s *Server) issueTokens(w http.ResponseWriter, email string) {
	now := time.Now()
	access := cryptox.MustGenerateToken(32)
	refresh := cryptox.MustGenerateToken(32)
	s.accessTokens[access] = session{userEmail: email, expiresAt: now.Add(accessTTL)}
	s.refreshTokens[refresh] = session{userEmail: email, expiresAt: now.Add(refreshTTL)}

	http.SetCookie(w, &http.Cookie{
		Name: "access_token", Value: access, Path: "/",
		MaxAge: int(accessTTL.Seconds()), HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: "refresh_token", Value: refresh, Path: "/",
		MaxAge: int(refreshTTL.Seconds()), HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}

// authedUser resolves the access_token cookie to a user. Callers must hold s.mu.
func (s *Server) authedUser(r *http.Request) *user {
	c, err := r.Cookie("access_token")
	if err != nil {
		return nil
	}
	sess, ok := s.accessTokens[c.Value]
	if !ok || time.Now().After(sess.expiresAt) {
		return nil
	}
	return s.users[sess.userEmail]
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Email]
	if !ok || cryptox.VerifyPassword(req.Password, u.PasswordHash) != nil {
		fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.issueTokens(w, u.Email)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Password) < 8 {
		fail(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		fail(w, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	u := &user{
		ID:           cryptox.MustGenerateToken(8),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "buyer",
		PasswordHash: hash,
	}
	s.users[u.Email] = u

	s.issueTokens(w, u.Email)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "user": u})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil {
		fail(w, http.StatusUnauthorized, "No refresh token")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.refreshTokens[c.Value]
	if !ok || time.Now().After(sess.expiresAt) {
		fail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// Rotation: the presented refresh token is consumed.
	delete(s.refreshTokens, c.Value)

	s.issueTokens(w, sess.userEmail)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie("access_token"); err == nil {
		delete(s.accessTokens, c.Value)
	}
	if c, err := r.Cookie("refresh_token"); err == nil {
		delete(s.refreshTokens, c.Value)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authedUser(r) == nil {
		fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "valid": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.authedUser(r)
	if u == nil {
		fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
}

func (s *Server) handleCartMerge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []cartLine `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.authedUser(r)
	if u == nil {
		fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	// Merge by product id, summing quantities.
	cart := s.carts[u.Email]
	for _, incoming := range req.Items {
		merged := false
		for i := range cart {
			if cart[i].ProductID == incoming.ProductID {
				cart[i].Quantity += incoming.Quantity
				merged = true
				break
			}
		}
		if !merged {
			cart = append(cart, incoming)
		}
	}
	s.carts[u.Email] = cart

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "items": cart})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.authedUser(r)
	if u == nil {
		fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	items := s.carts[u.Email]
	if items == nil {
		items = []cartLine{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "items": items})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authedUser(r) == nil {
		fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": []any{}})
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authedUser(r) == nil {
		fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"userId":  r.PathValue("userId"),
		"slots":   []string{"mon-12:00", "wed-15:30"},
	})
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.authedUser(r)
	if u == nil {
		fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"products": []map[string]any{
			{"id": "p1", "name": "Used calculus textbook", "price": 20.00},
			{"id": "p2", "name": "Desk lamp", "price": 8.50},
			{"id": "p3", "name": "Mini fridge", "price": 45.00},
		},
	})
}
