package semester

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo-admin/core"
)

type stubClient struct {
	listRaw json.RawMessage // the collection endpoint (bare array)
	getRaw  json.RawMessage // the by-id endpoint
	postRaw json.RawMessage
	posts   []string
	dels    []string
}

var _ core.RESTClient = (*stubClient)(nil)

func (c *stubClient) Get(_ context.Context, path string, _ url.Values) (json.RawMessage, error) {
	if strings.Contains(path, "/v1/semesters/") {
		return c.getRaw, nil
	}
	return c.listRaw, nil
}

func (c *stubClient) Post(_ context.Context, path string, _ interface{}) (json.RawMessage, error) {
	c.posts = append(c.posts, path)
	return c.postRaw, nil
}

func (c *stubClient) Put(_ context.Context, _ string, body interface{}) (json.RawMessage, error) {
	return json.Marshal(body)
}

func (c *stubClient) Delete(_ context.Context, path string) (json.RawMessage, error) {
	c.dels = append(c.dels, path)
	return nil, nil
}

func newBreak(name string) NewBreak {
	start := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	return NewBreak{Name: name, StartDate: start, EndDate: start.AddDate(0, 0, 5)}
}

func TestService_AddBreak(t *testing.T) {
	client := &stubClient{
		listRaw: json.RawMessage(`[{"id":1,"name":"Fall 2026","breaks":[]}]`),
		postRaw: json.RawMessage(`{"id":9,"name":"Midterm"}`),
	}
	svc := NewService(client, core.NopLogger{})
	ctx := context.Background()

	if _, err := svc.List(ctx, 1, 10); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	prior := svc.State()

	brk, err := svc.AddBreak(ctx, "1", newBreak("Midterm"))
	if err != nil {
		t.Fatalf("AddBreak() failed: %v", err)
	}
	assert.Equal(t, []string{"/v1/semesters/1/breaks"}, client.posts)
	assert.Equal(t, 9, brk.ID)

	state := svc.State()
	if assert.Len(t, state.Items[0].Breaks, 1) {
		assert.Equal(t, "Midterm", state.Items[0].Breaks[0].Name)
	}
	// reconciliation never writes through an already-issued snapshot
	assert.Empty(t, prior.Items[0].Breaks)

	// a parent on an unloaded page: the break is created, items untouched
	if _, err = svc.AddBreak(ctx, "404", newBreak("Ghost")); err != nil {
		t.Fatalf("AddBreak() failed: %v", err)
	}
	assert.Len(t, svc.State().Items, 1)
	assert.Len(t, svc.State().Items[0].Breaks, 1)
}

func TestService_AddBreakReconcilesSelected(t *testing.T) {
	client := &stubClient{
		listRaw: json.RawMessage(`[]`),
		getRaw:  json.RawMessage(`{"id":2,"name":"Spring 2027","breaks":[]}`),
		postRaw: json.RawMessage(`{"id":7,"name":"Easter"}`),
	}
	svc := NewService(client, core.NopLogger{})
	ctx := context.Background()

	if _, err := svc.Get(ctx, "2"); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if _, err := svc.AddBreak(ctx, "2", newBreak("Easter")); err != nil {
		t.Fatalf("AddBreak() failed: %v", err)
	}

	state := svc.State()
	if assert.NotNil(t, state.Selected) {
		assert.Len(t, state.Selected.Breaks, 1)
	}
}

func TestService_RemoveBreak(t *testing.T) {
	client := &stubClient{
		listRaw: json.RawMessage(`[{"id":1,"name":"Fall 2026","breaks":[{"id":9,"name":"Midterm"}]}]`),
	}
	svc := NewService(client, core.NopLogger{})
	ctx := context.Background()

	if _, err := svc.List(ctx, 1, 10); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	prior := svc.State()

	if err := svc.RemoveBreak(ctx, "1", "9"); err != nil {
		t.Fatalf("RemoveBreak() failed: %v", err)
	}
	assert.Equal(t, []string{"/v1/semesters/1/breaks/9"}, client.dels)
	assert.Empty(t, svc.State().Items[0].Breaks)
	assert.Len(t, prior.Items[0].Breaks, 1)
}
