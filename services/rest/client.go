// Package rest implements the authenticated HTTP boundary every resource
// store calls through. It mirrors the platform API's error envelope: 400s
// carry a field-error map (or {"error": msg}), other failures carry
// {"error": msg}; both are decoded into the typed errors of the core package.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

type Client struct {
	base    *url.URL
	http    *http.Client
	session *Session
	log     core.Logger
}

var _ core.RESTClient = (*Client)(nil)

func NewClient(conf *core.Config, session *Session, logger core.Logger) (*Client, error) {
	base, err := url.Parse(conf.API.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing apiBaseUrl %q", conf.API.BaseURL)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: conf.API.Timeout},
		session: session,
		log:     logger,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, true)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, true)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, true)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// Login authenticates against the platform and caches the returned token in
// the session. It is the only anonymous call the client makes.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: core.CleanString(username, true /* lower */), Password: password}

	raw, err := c.do(ctx, http.MethodPost, "/v1/users/login", nil, payload, false)
	if err != nil {
		return err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err = json.Unmarshal(raw, &resp); err != nil {
		return errors.Wrap(err, "decoding login response")
	}
	if resp.Token == "" {
		return core.AuthError{Status: http.StatusUnauthorized, Message: "login returned no token"}
	}
	return c.session.SetToken(resp.Token)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, authed bool) (json.RawMessage, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.session != nil {
		token, err := c.session.Token()
		if err != nil {
			return nil, err // expired credential; fail before the round trip
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, core.TransportError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.TransportError{Cause: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	apiErr := decodeAPIError(resp.StatusCode, path, data)
	c.log.Debug(method + " " + path + " failed: " + apiErr.Error())
	return nil, apiErr
}

// decodeAPIError maps a non-2xx response onto the core error taxonomy.
func decodeAPIError(status int, path string, body []byte) error {
	msg := errorMessage(body)

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if flds := fieldErrors(body); len(flds) > 0 {
			return core.NewValidationError(errors.New("the submitted data was rejected"), flds...)
		}
		if msg == "" {
			msg = "the submitted data was rejected"
		}
		return core.NewValidationError(errors.New(msg))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return core.AuthError{Status: status, Message: msg}
	case status == http.StatusNotFound:
		return core.NotFoundError{Resource: strings.Trim(path, "/")}
	case status == http.StatusConflict:
		if msg == "" {
			msg = "conflicting record"
		}
		return core.ConflictError{Message: msg}
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return core.ServerError{Status: status, Message: msg}
	}
}

// errorMessage extracts the API's {"error": msg} envelope, if present.
func errorMessage(body []byte) string {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		return env.Error
	}
	// debug-mode responses are plain strings
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return ""
}

// fieldErrors decodes a validation field-error map, the API's 400 envelope
// for rejected payloads.
func fieldErrors(body []byte) []core.FieldError {
	var m map[string]string
	if err := json.Unmarshal(body, &m); err != nil {
		return nil
	}
	delete(m, "error")
	flds := make([]core.FieldError, 0, len(m))
	for f, e := range m {
		flds = append(flds, core.FieldError{Field: f, Error: e})
	}
	return flds
}
