package resource

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/url"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

// ErrSuperseded is returned to a FetchPage caller whose response arrived after
// a newer fetch already took ownership of the collection state. The response
// is dropped; state reflects the newest request only.
var ErrSuperseded = stderrors.New("fetch superseded by a newer request")

const defaultPageSize = 20

type Options struct {
	// Name is the singular snake_case entity name, e.g. "student_degree".
	// It derives the plural envelope key during normalization.
	Name string
	// Path is the collection endpoint, e.g. "/v1/users".
	Path   string
	Mode   PaginationMode
	Insert InsertPolicy
	Logger core.Logger
}

// Store is the single source of truth for one entity collection. All reads
// and writes go through the RESTClient boundary; views only ever receive
// value snapshots via State() or the command return values.
type Store[T Entity] struct {
	client core.RESTClient
	log    core.Logger
	name   string
	path   string
	mode   PaginationMode
	insert InsertPolicy

	mu          sync.Mutex
	state       CollectionState[T]
	fetchSeq    uint64
	cancelFetch context.CancelFunc
}

func NewStore[T Entity](client core.RESTClient, opts Options) *Store[T] {
	if opts.Name == "" || opts.Path == "" {
		panic("resource: Options.Name and Options.Path are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Store[T]{
		client: client,
		log:    logger,
		name:   opts.Name,
		path:   opts.Path,
		mode:   opts.Mode,
		insert: opts.Insert,
		state: CollectionState[T]{
			Items:   []T{},
			Filters: map[string]string{},
		},
	}
}

// State returns a snapshot of the collection state.
func (s *Store[T]) State() CollectionState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetFilters merges partial into the active filters without fetching; only an
// explicit FetchPage applies them (search-on-submit, not on every keystroke).
func (s *Store[T]) SetFilters(partial map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range partial {
		s.state.Filters[k] = v
	}
}

// ClearFilters resets the active filters; the next FetchPage is unfiltered.
func (s *Store[T]) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = map[string]string{}
}

// FetchPage loads the given window of the collection. A nil filters map keeps
// the active filters; a non-nil map replaces them — but the replacement is
// installed only once the fetch succeeds, so a failed fetch's snapshot still
// describes the retained rows.
//
// On failure the previous items/pageInfo are retained alongside Status ==
// Failed: a stale table with an error banner beats a blanked screen.
// Concurrent fetches are fenced by sequence number; the superseded request is
// cancelled best-effort and its caller gets ErrSuperseded.
func (s *Store[T]) FetchPage(ctx context.Context, page, size int, filters map[string]string) (CollectionState[T], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}

	s.mu.Lock()
	reqFilters := s.state.Filters
	if filters != nil {
		reqFilters = cloneFilters(filters)
	}
	q := make(url.Values, len(reqFilters)+2)
	for k, v := range reqFilters {
		if v != "" {
			q.Set(k, v)
		}
	}
	if s.mode == ServerPaged {
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(size))
	}
	s.fetchSeq++
	seq := s.fetchSeq
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	s.state.Status = Loading
	s.mu.Unlock()

	raw, err := s.client.Get(fetchCtx, s.path, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		s.log.Debug("dropping stale " + s.name + " list response")
		return s.state.clone(), ErrSuperseded
	}
	cancel()
	s.cancelFetch = nil

	if err != nil {
		s.state.Status = Failed
		s.state.Err = err
		return s.state.clone(), err
	}

	pg, err := Normalize[T](raw, s.name, page, size)
	if err != nil {
		s.state.Status = Failed
		s.state.Err = err
		return s.state.clone(), err
	}

	if filters != nil {
		s.state.Filters = reqFilters
	}
	s.state.Items = pg.Items
	if s.mode == ClientPaged {
		// full set held locally; the window is derived from the request,
		// clamped so an out-of-range page lands on the last one
		info := derivePageInfo(page, size, len(pg.Items))
		if info.CurrentPage > info.TotalPages {
			info.CurrentPage = info.TotalPages
		}
		s.state.PageInfo = info
	} else {
		s.state.PageInfo = pg.Info
	}
	s.state.Status = Ready
	s.state.Err = nil
	return s.state.clone(), nil
}

// FetchByID loads one record into Selected. Its loading state is independent
// from the list's, so a detail panel and a list may load concurrently.
func (s *Store[T]) FetchByID(ctx context.Context, id string) (T, error) {
	var zero T

	s.mu.Lock()
	s.state.SelectedStatus = Loading
	s.mu.Unlock()

	raw, err := s.client.Get(ctx, s.path+"/"+url.PathEscape(id), nil)
	if err != nil {
		s.setSelectedFailed()
		return zero, err
	}
	var item T
	if err = json.Unmarshal(raw, &item); err != nil {
		s.setSelectedFailed()
		return zero, errors.Wrapf(err, "decoding %s", s.name)
	}

	s.mu.Lock()
	s.state.Selected = &item
	s.state.SelectedStatus = Ready
	s.mu.Unlock()
	return item, nil
}

// Reconcile applies a locally reconciled record into the loaded collection
// without a round trip. Nested child mutations (a semester's breaks, a
// group's assignments) use it after the server confirmed the child change:
// the parent record is patched in place, Selected included when it matches.
func (s *Store[T]) Reconcile(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = Replace(s.state.Items, item)
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == item.EntityID() {
		s.state.Selected = &item
	}
}

// Select marks an already-loaded record as selected (open-for-edit).
func (s *Store[T]) Select(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = &item
	s.state.SelectedStatus = Ready
}

// Create posts payload and reconciles the returned record into the loaded
// items per the store's insert policy; TotalItems is incremented either way.
// No automatic re-fetch happens: callers wanting strict page consistency call
// FetchPage afterwards.
func (s *Store[T]) Create(ctx context.Context, payload interface{}) (T, error) {
	var zero T
	raw, err := s.client.Post(ctx, s.path, payload)
	if err != nil {
		return zero, err
	}
	var item T
	if err = json.Unmarshal(raw, &item); err != nil {
		return zero, errors.Wrapf(err, "decoding created %s", s.name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = Insert(s.state.Items, item, s.insert)
	s.state.PageInfo = Recount(s.state.PageInfo, +1)
	return item, nil
}

// Update puts payload for id and replaces the matching loaded record; a record
// on an unloaded page is a silent no-op on items. Selected is refreshed when
// it matches.
func (s *Store[T]) Update(ctx context.Context, id string, payload interface{}) (T, error) {
	var zero T
	raw, err := s.client.Put(ctx, s.path+"/"+url.PathEscape(id), payload)
	if err != nil {
		return zero, err
	}
	var item T
	if err = json.Unmarshal(raw, &item); err != nil {
		return zero, errors.Wrapf(err, "decoding updated %s", s.name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = Replace(s.state.Items, item)
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == item.EntityID() {
		s.state.Selected = &item
	}
	return item, nil
}

// Remove deletes id on the server, then reconciles: removal from items only
// after server confirmation (never pessimistically), TotalItems decremented
// regardless of whether the record was loaded locally, Selected cleared when
// it matches.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, s.path+"/"+url.PathEscape(id)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = RemoveByID(s.state.Items, id)
	s.state.PageInfo = Recount(s.state.PageInfo, -1)
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == id {
		s.state.Selected = nil
		s.state.SelectedStatus = Idle
	}
	return nil
}

func (s *Store[T]) setSelectedFailed() {
	s.mu.Lock()
	s.state.SelectedStatus = Failed
	s.mu.Unlock()
}
