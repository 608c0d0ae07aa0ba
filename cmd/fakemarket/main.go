// Command fakemarket is an in-memory stand-in for the marketplace backend,
// used for local gateway development and the end-to-end suite. It speaks the
// same auth surface (cookie-carried opaque tokens, rotation on refresh) and
// a small slice of the resource API.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/unimarket/gateway/pkg/cryptox"
)

func main() {
	port := 4000
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	srv := NewServer()
	if err := srv.SeedUser("student@uni.edu", "password123", "Sam", "Student"); err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}

	log.Printf("fakemarket listening on :%d", port)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           srv,
		ReadHeaderTimeout: 3 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// SeedUser registers a user with an argon2id-hashed password, the same way
// the real backend stores credentials.
func (s *Server) SeedUser(email, password, firstName, lastName string) error {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = &user{
		ID:           cryptox.MustGenerateToken(8),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         "buyer",
		PasswordHash: hash,
	}
	return nil
}
