package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsert(t *testing.T) {
	loaded := []testEntity{{ID: "1"}, {ID: "2"}}
	created := testEntity{ID: "3"}

	tests := []struct {
		name   string
		policy InsertPolicy
		want   []testEntity
	}{
		{name: "prepend", policy: Prepend, want: []testEntity{{ID: "3"}, {ID: "1"}, {ID: "2"}}},
		{name: "append", policy: Append, want: []testEntity{{ID: "1"}, {ID: "2"}, {ID: "3"}}},
		{name: "require refetch", policy: RequireRefetch, want: []testEntity{{ID: "1"}, {ID: "2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insert(loaded, created, tt.policy)
			assert.Equal(t, tt.want, got)
			// the input sequence is never mutated
			assert.Equal(t, []testEntity{{ID: "1"}, {ID: "2"}}, loaded)
		})
	}
}

func TestReplace(t *testing.T) {
	loaded := []testEntity{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}

	got := Replace(loaded, testEntity{ID: "2", Name: "B"})
	assert.Equal(t, []testEntity{{ID: "1", Name: "a"}, {ID: "2", Name: "B"}}, got)
	assert.Equal(t, "b", loaded[1].Name) // copy-on-write

	// a record on an unloaded page is a no-op, not an error
	got = Replace(loaded, testEntity{ID: "404", Name: "x"})
	assert.Equal(t, loaded, got)
}

func TestRemoveByID(t *testing.T) {
	loaded := []testEntity{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	got := RemoveByID(loaded, "2")
	assert.Equal(t, []testEntity{{ID: "1"}, {ID: "3"}}, got)
	assert.Len(t, loaded, 3)

	got = RemoveByID(loaded, "404")
	assert.Equal(t, loaded, got)
}

func TestRecount(t *testing.T) {
	info := PageInfo{CurrentPage: 2, PageSize: 10, TotalItems: 21, TotalPages: 3}

	got := Recount(info, +1)
	assert.Equal(t, PageInfo{CurrentPage: 2, PageSize: 10, TotalItems: 22, TotalPages: 3}, got)

	got = Recount(info, -1)
	assert.Equal(t, PageInfo{CurrentPage: 2, PageSize: 10, TotalItems: 20, TotalPages: 2}, got)

	// never negative, never zero pages
	got = Recount(PageInfo{CurrentPage: 1, PageSize: 10}, -1)
	assert.Equal(t, PageInfo{CurrentPage: 1, PageSize: 10, TotalItems: 0, TotalPages: 1}, got)
}
