package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo-admin/core"
	restsvc "github.com/trezcool/masomo-admin/services/rest"
	testutil "github.com/trezcool/masomo-admin/tests"
)

func newClient(t *testing.T, baseURL string) *restsvc.Client {
	t.Helper()
	conf := &core.Config{}
	conf.API.BaseURL = baseURL
	conf.API.Timeout = 5 * time.Second
	conf.Auth.TokenFile = filepath.Join(t.TempDir(), "token")

	client, err := restsvc.NewClient(conf, restsvc.NewSession(conf), core.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return client
}

func TestClient_errorTaxonomy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/invalid-fields":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"email":"email must be a valid email address","name":"name is a required field"}`))
		case "/v1/invalid":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid payload"}`))
		case "/v1/unauthorized":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"token expired"}`))
		case "/v1/forbidden":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"permission denied"}`))
		case "/v1/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		case "/v1/conflicting":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":"a user with this email already exists"}`))
		case "/v1/broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"oops"}`))
		default:
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()
	client := newClient(t, srv.URL)
	ctx := context.Background()

	t.Run("success returns the raw body", func(t *testing.T) {
		raw, err := client.Get(ctx, "/v1/ok", nil)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(raw))
	})

	t.Run("400 with field map", func(t *testing.T) {
		_, err := client.Get(ctx, "/v1/invalid-fields", nil)
		var verr *core.ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, map[string]string{
				"email": "email must be a valid email address",
				"name":  "name is a required field",
			}, verr.FieldMap())
		}
	})

	t.Run("400 with message only", func(t *testing.T) {
		_, err := client.Get(ctx, "/v1/invalid", nil)
		var verr *core.ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Empty(t, verr.Fields)
			assert.Equal(t, "invalid payload", verr.Error())
		}
	})

	t.Run("401", func(t *testing.T) {
		_, err := client.Get(ctx, "/v1/unauthorized", nil)
		var aerr core.AuthError
		if assert.ErrorAs(t, err, &aerr) {
			assert.Equal(t, http.StatusUnauthorized, aerr.Status)
			assert.Equal(t, "token expired", aerr.Message)
		}
	})

	t.Run("403", func(t *testing.T) {
		_, err := client.Get(ctx, "/v1/forbidden", nil)
		var aerr core.AuthError
		if assert.ErrorAs(t, err, &aerr) {
			assert.Equal(t, http.StatusForbidden, aerr.Status)
		}
	})

	t.Run("404", func(t *testing.T) {
		_, err := client.Get(ctx, "/v1/missing", nil)
		assert.True(t, core.IsNotFound(err))
		var nerr core.NotFoundError
		if assert.ErrorAs(t, err, &nerr) {
			assert.Equal(t, "v1/missing", nerr.Resource)
		}
	})

	t.Run("409", func(t *testing.T) {
		_, err := client.Get(ctx, "/v1/conflicting", nil)
		var cerr core.ConflictError
		if assert.ErrorAs(t, err, &cerr) {
			assert.Equal(t, "a user with this email already exists", cerr.Message)
		}
	})

	t.Run("5xx", func(t *testing.T) {
		_, err := client.Get(ctx, "/v1/broken", nil)
		var serr core.ServerError
		if assert.ErrorAs(t, err, &serr) {
			assert.Equal(t, http.StatusInternalServerError, serr.Status)
			assert.Equal(t, "oops", serr.Message)
		}
	})
}

func TestClient_transportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newClient(t, srv.URL)
	srv.Close() // conn refused from here on

	_, err := client.Get(context.Background(), "/v1/users", nil)
	var terr core.TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestClient_requestHeaders(t *testing.T) {
	var gotAuth, gotReqID, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// log in against the fake API, then point the client at the recording server
	api := testutil.NewAPIServer(t)
	conf := testutil.Config(t, api)
	conf.API.BaseURL = srv.URL

	authed, err := restsvc.NewClient(conf, authedSession(t, api), core.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	if _, err := authed.Get(context.Background(), "/v1/anything", url.Values{"a": {"b"}}); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	assert.True(t, len(gotAuth) > len("Bearer "))
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "application/json", gotAccept)
}

func authedSession(t *testing.T, api *testutil.APIServer) *restsvc.Session {
	t.Helper()
	_, session := testutil.Client(t, api)
	return session
}

func TestClient_Login(t *testing.T) {
	api := testutil.NewAPIServer(t)
	usr := api.SeedUsers(1)[0]

	conf := testutil.Config(t, api)
	session := restsvc.NewSession(conf)
	client, err := restsvc.NewClient(conf, session, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	// bad credentials
	err = client.Login(context.Background(), usr.Username, "nope")
	var aerr core.AuthError
	assert.ErrorAs(t, err, &aerr)
	assert.False(t, session.Authenticated())

	// good credentials; email works too
	if err = client.Login(context.Background(), usr.Email, api.Password()); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	assert.True(t, session.Authenticated())
	assert.Equal(t, usr.Username, session.Claims().Username)
}
