package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

// Claims mirrors the authorization claims the platform puts in its JWTs.
// The client never verifies the signature (it has no key and no business
// doing so); it only reads expiry and identity for fail-fast and display.
type Claims struct {
	jwt.StandardClaims
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
	IsAdmin  bool     `json:"is_admin,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// Session holds the bearer credential, cached on disk across CLI invocations.
type Session struct {
	tokenFile string

	mu     sync.Mutex
	token  string
	claims *Claims
}

// NewSession loads any previously cached token; a missing or unreadable cache
// just yields an anonymous session.
func NewSession(conf *core.Config) *Session {
	s := &Session{tokenFile: conf.Auth.TokenFile}
	if data, err := os.ReadFile(s.tokenFile); err == nil {
		_ = s.setToken(string(data), false)
	}
	return s
}

// SetToken parses and stores a fresh credential, persisting it to the cache
// file.
func (s *Session) SetToken(token string) error {
	return s.setToken(token, true)
}

func (s *Session) setToken(token string, persist bool) error {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return errors.Wrap(err, "parsing token")
	}

	s.mu.Lock()
	s.token = token
	s.claims = claims
	s.mu.Unlock()

	if persist {
		if err := os.MkdirAll(filepath.Dir(s.tokenFile), 0o700); err != nil {
			return errors.Wrap(err, "creating token dir")
		}
		if err := os.WriteFile(s.tokenFile, []byte(token), 0o600); err != nil {
			return errors.Wrap(err, "caching token")
		}
	}
	return nil
}

// Token returns the bearer credential, or "" for an anonymous session. An
// expired credential fails with AuthError before any request is attempted.
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", nil
	}
	if s.claims != nil && s.claims.ExpiresAt > 0 && s.claims.ExpiresAt <= time.Now().Unix() {
		return "", core.AuthError{Status: http.StatusUnauthorized, Message: "session expired, please login again"}
	}
	return s.token, nil
}

// Claims returns the identity claims of the current credential, if any.
func (s *Session) Claims() *Claims {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims == nil {
		return nil
	}
	claims := *s.claims
	return &claims
}

// Authenticated reports whether a non-expired credential is held.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	token := s.token
	claims := s.claims
	s.mu.Unlock()
	if token == "" {
		return false
	}
	return claims == nil || claims.ExpiresAt == 0 || claims.ExpiresAt > time.Now().Unix()
}

// Clear drops the credential and removes the cache file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.claims = nil
	s.mu.Unlock()
	if err := os.Remove(s.tokenFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing token cache")
	}
	return nil
}
