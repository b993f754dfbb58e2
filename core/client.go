package core

import (
	"context"
	"encoding/json"
	"net/url"
)

// RESTClient is the boundary every resource store calls through. It performs
// authenticated requests against the platform API and returns the decoded
// response body, or a typed error from errors.go on any non-2xx outcome.
type RESTClient interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error)
	Put(ctx context.Context, path string, body interface{}) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}
