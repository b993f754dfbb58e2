package resource

// Entity is any record manageable by a Store. IDs are strings on the wire;
// integer-keyed collections format theirs (see entity packages).
type Entity interface {
	EntityID() string
}

// Status of a collection (or of the selected record) within its store.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// PaginationMode is fixed at store construction; the two modes are mutually
// exclusive per store instance.
type PaginationMode int

const (
	// ServerPaged stores hold at most one page of items at a time.
	ServerPaged PaginationMode = iota
	// ClientPaged stores fetch the full collection once and slice in memory.
	ClientPaged
)

// InsertPolicy decides where a freshly created record lands in the loaded items.
type InsertPolicy int

const (
	// Prepend shows the newest record first (most screens).
	Prepend InsertPolicy = iota
	// Append adds at the end (e.g. attachments within a group).
	Append
	// RequireRefetch leaves items alone; the target page of a server-sorted
	// collection cannot be determined locally.
	RequireRefetch
)

// PageInfo is the canonical, 1-indexed pagination shape all call sites consume.
// Raw backend conventions (zero-indexed pages, disagreeing totals) never leak
// past the normalizer.
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// Page is a normalized list response.
type Page[T Entity] struct {
	Items []T
	Info  PageInfo
}

// CollectionState is the canonical state of one entity collection. Views get
// value copies of it; the owning store holds the only mutable instance.
type CollectionState[T Entity] struct {
	Items    []T
	PageInfo PageInfo
	Filters  map[string]string
	Status   Status
	Err      error // set only when Status == Failed

	// Selected has a lifecycle independent from Items; a detail panel and a
	// list may load concurrently without interfering.
	Selected       *T
	SelectedStatus Status
}

// PageSlice returns the window of Items corresponding to PageInfo.CurrentPage.
// For server-paged stores Items already is that window; client-paged stores
// hold the full set and slice here.
func (s CollectionState[T]) PageSlice() []T {
	if s.PageInfo.PageSize <= 0 || len(s.Items) <= s.PageInfo.PageSize {
		return s.Items
	}
	start := (s.PageInfo.CurrentPage - 1) * s.PageInfo.PageSize
	if start < 0 {
		start = 0
	}
	if start >= len(s.Items) {
		return nil
	}
	end := start + s.PageInfo.PageSize
	if end > len(s.Items) {
		end = len(s.Items)
	}
	return s.Items[start:end]
}

func (s CollectionState[T]) clone() CollectionState[T] {
	out := s
	out.Items = append([]T(nil), s.Items...)
	out.Filters = cloneFilters(s.Filters)
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	return out
}

func cloneFilters(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
