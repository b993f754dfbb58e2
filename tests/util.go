package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/trezcool/masomo-admin/core"
	restsvc "github.com/trezcool/masomo-admin/services/rest"
)

// Config returns a test configuration pointing at srv, with the token cache
// in a per-test temp dir.
func Config(t *testing.T, srv *APIServer) *core.Config {
	t.Helper()
	conf := &core.Config{
		Env:     "TEST",
		Debug:   true,
		AppName: "Masomo Admin",
		Build:   "test",
	}
	conf.API.BaseURL = srv.URL()
	conf.API.Timeout = 5 * time.Second
	conf.Auth.TokenFile = filepath.Join(t.TempDir(), "token")
	return conf
}

// Client returns a REST client logged in as the first seeded user (seeding one
// if none exist).
func Client(t *testing.T, srv *APIServer) (*restsvc.Client, *restsvc.Session) {
	t.Helper()

	session := restsvc.NewSession(Config(t, srv))
	client, err := restsvc.NewClient(Config(t, srv), session, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	srv.mu.Lock()
	seeded := len(srv.users) > 0
	srv.mu.Unlock()
	if !seeded {
		srv.SeedUsers(1)
	}
	srv.mu.Lock()
	username := srv.users[0].Username
	srv.mu.Unlock()

	if err = client.Login(context.Background(), username, srv.Password()); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	return client, session
}
