package assignment

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
	listRaw json.RawMessage // the collection endpoint (data/meta envelope)
	getRaw  json.RawMessage // the by-id endpoint
	postRaw json.RawMessage
	posts   []string
	dels    []string
}

var _ core.RESTClient = (*stubClient)(nil)

func (c *stubClient) Get(_ context.Context, path string, _ url.Values) (json.RawMessage, error) {
	if strings.Contains(path, "/v1/assignment-groups/") {
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

func groupList() json.RawMessage {
	return json.RawMessage(`{
		"data": [{
			"id": 1, "course_id": 3, "title": "Homework", "weight": 40,
			"assignments": [{"id": 10, "title": "HW1", "attachments": []}]
		}],
		"meta": {"total": 1, "page": 1, "page_size": 10}
	}`)
}

func loadedService(t *testing.T, client *stubClient) *Service {
	t.Helper()
	svc := NewService(client, core.NopLogger{})
	if _, err := svc.List(context.Background(), "", 1, 10); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	return svc
}

func TestService_AddAssignment(t *testing.T) {
	client := &stubClient{
		listRaw: groupList(),
		postRaw: json.RawMessage(`{"id":11,"title":"HW2"}`),
	}
	svc := loadedService(t, client)
	prior := svc.State()

	na := NewAssignment{Title: "HW2", DueDate: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)}
	asg, err := svc.AddAssignment(context.Background(), "1", na)
	if err != nil {
		t.Fatalf("AddAssignment() failed: %v", err)
	}
	assert.Equal(t, []string{"/v1/assignment-groups/1/assignments"}, client.posts)
	assert.Equal(t, 11, asg.ID)

	state := svc.State()
	if assert.Len(t, state.Items[0].Assignments, 2) {
		assert.Equal(t, "HW2", state.Items[0].Assignments[1].Title) // appended
	}
	assert.Len(t, prior.Items[0].Assignments, 1)
}

func TestService_RemoveAssignment(t *testing.T) {
	client := &stubClient{listRaw: groupList()}
	svc := loadedService(t, client)
	prior := svc.State()

	if err := svc.RemoveAssignment(context.Background(), "1", "10"); err != nil {
		t.Fatalf("RemoveAssignment() failed: %v", err)
	}
	assert.Equal(t, []string{"/v1/assignment-groups/1/assignments/10"}, client.dels)
	assert.Empty(t, svc.State().Items[0].Assignments)
	assert.Len(t, prior.Items[0].Assignments, 1)
}

func TestService_AddAttachment(t *testing.T) {
	client := &stubClient{
		listRaw: groupList(),
		postRaw: json.RawMessage(`{"id":100,"file_name":"syllabus.pdf"}`),
	}
	svc := loadedService(t, client)
	prior := svc.State()

	att, err := svc.AddAttachment(context.Background(), "1", "10", Attachment{FileName: "syllabus.pdf"})
	if err != nil {
		t.Fatalf("AddAttachment() failed: %v", err)
	}
	assert.Equal(t, []string{"/v1/assignment-groups/1/assignments/10/attachments"}, client.posts)
	assert.Equal(t, "syllabus.pdf", att.FileName)

	state := svc.State()
	if assert.Len(t, state.Items[0].Assignments[0].Attachments, 1) {
		assert.Equal(t, 100, state.Items[0].Assignments[0].Attachments[0].ID)
	}
	// two levels deep, the snapshot a view already holds must not move
	assert.Empty(t, prior.Items[0].Assignments[0].Attachments)

	// an unknown assignment within the group: created, items untouched
	if _, err = svc.AddAttachment(context.Background(), "1", "404", Attachment{FileName: "extra.pdf"}); err != nil {
		t.Fatalf("AddAttachment() failed: %v", err)
	}
	assert.Len(t, svc.State().Items[0].Assignments[0].Attachments, 1)
}
