package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/degree"
	"github.com/trezcool/masomo-admin/core/resource"
	"github.com/trezcool/masomo-admin/core/semester"
	"github.com/trezcool/masomo-admin/core/user"
	restsvc "github.com/trezcool/masomo-admin/services/rest"
)

// The user list walks the full path: REST boundary, Spring-style envelope
// normalization, reconciliation after a create and a delete.
func Test_userCollection(t *testing.T) {
	api := NewAPIServer(t)
	api.SeedUsers(25)
	client, _ := Client(t, api)
	svc := user.NewService(client, core.NopLogger{})
	ctx := context.Background()

	state, err := svc.List(ctx, 1, 10, nil)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	assert.Len(t, state.Items, 10)
	assert.Equal(t, 1, state.PageInfo.CurrentPage)
	assert.Equal(t, 10, state.PageInfo.PageSize)
	assert.Equal(t, 25, state.PageInfo.TotalItems)
	assert.Equal(t, 3, state.PageInfo.TotalPages)

	// the last page is short
	state, err = svc.List(ctx, 3, 10, nil)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	assert.Len(t, state.Items, 5)
	assert.Equal(t, 3, state.PageInfo.CurrentPage)

	// creating reconciles in place: newest first, count bumped, no re-fetch
	usr, err := svc.Create(ctx, user.NewUser{
		Name:            "Newcomer",
		Username:        "newcomer",
		Email:           "newcomer@test.cd",
		Password:        "S3cr3t.Pwd",
		PasswordConfirm: "S3cr3t.Pwd",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	state = svc.State()
	assert.Equal(t, usr.ID, state.Items[0].ID)
	assert.Equal(t, 26, state.PageInfo.TotalItems)
	assert.Equal(t, 3, state.PageInfo.TotalPages)

	// an explicit re-fetch restores strict page consistency
	state, err = svc.List(ctx, 3, 10, nil)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	assert.Len(t, state.Items, 6)

	// deleting reconciles: row dropped, count decremented
	if err = svc.Delete(ctx, usr.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	state = svc.State()
	assert.Equal(t, 25, state.PageInfo.TotalItems)
	for _, u := range state.Items {
		assert.NotEqual(t, usr.ID, u.ID)
	}
}

func Test_userSearchAndGet(t *testing.T) {
	api := NewAPIServer(t)
	seeded := api.SeedUsers(5)
	client, _ := Client(t, api)
	svc := user.NewService(client, core.NopLogger{})
	ctx := context.Background()

	state, err := svc.List(ctx, 1, 10, &user.Filter{Search: seeded[2].Username})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if assert.Len(t, state.Items, 1) {
		assert.Equal(t, seeded[2].ID, state.Items[0].ID)
	}

	usr, err := svc.Get(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	assert.Equal(t, seeded[0].Username, usr.Username)
	assert.Equal(t, seeded[0].ID, svc.State().Selected.ID)

	_, err = svc.Get(ctx, "404404")
	assert.True(t, core.IsNotFound(err))

	roles, err := svc.QueryRoles(ctx)
	if err != nil {
		t.Fatalf("QueryRoles() failed: %v", err)
	}
	assert.Equal(t, user.Roles, roles)
}

// Courses paginate with {data, meta}; degrees with a plural key; semesters
// return a bare array sliced client-side. The call sites are identical.
func Test_envelopeConventions(t *testing.T) {
	api := NewAPIServer(t)
	api.SeedCourses(7)
	api.SeedDegrees(4)
	api.SeedSemesters(5)
	client, _ := Client(t, api)
	ctx := context.Background()

	crsState, err := course.NewService(client, core.NopLogger{}).List(ctx, 2, 3, nil)
	if err != nil {
		t.Fatalf("courses List() failed: %v", err)
	}
	assert.Len(t, crsState.Items, 3)
	assert.Equal(t, 2, crsState.PageInfo.CurrentPage)
	assert.Equal(t, 7, crsState.PageInfo.TotalItems)
	assert.Equal(t, 3, crsState.PageInfo.TotalPages)

	degState, err := degree.NewService(client, core.NopLogger{}).List(ctx, 1, 10, "")
	if err != nil {
		t.Fatalf("degrees List() failed: %v", err)
	}
	assert.Len(t, degState.Items, 4)
	assert.Equal(t, 4, degState.PageInfo.TotalItems)
	assert.Equal(t, 1, degState.PageInfo.TotalPages)

	semState, err := semester.NewService(client, core.NopLogger{}).List(ctx, 2, 2)
	if err != nil {
		t.Fatalf("semesters List() failed: %v", err)
	}
	assert.Len(t, semState.Items, 5) // full set held locally
	assert.Equal(t, 3, semState.PageInfo.TotalPages)
	assert.Len(t, semState.PageSlice(), 2)
}

func Test_authRequired(t *testing.T) {
	api := NewAPIServer(t)
	api.SeedUsers(1)

	conf := Config(t, api)
	session := restsvc.NewSession(conf)
	client, err := restsvc.NewClient(conf, session, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	svc := user.NewService(client, core.NopLogger{})

	// anonymous requests are rejected by the API; the previous (empty) state
	// is retained alongside the failure
	state, err := svc.List(context.Background(), 1, 10, nil)
	assert.True(t, core.IsAuth(err))
	assert.Equal(t, resource.Failed, state.Status)
	assert.Empty(t, state.Items)

	// an expired cached credential fails before the round trip
	if err = session.SetToken(api.ExpiredToken(t, api.SeedUsers(1)[0])); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	_, err = svc.List(context.Background(), 1, 10, nil)
	assert.True(t, core.IsAuth(err))
}
