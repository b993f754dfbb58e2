package course

import (
	"context"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/resource"
)

// Service manages the course catalog. The courses endpoint paginates with the
// {data, meta} envelope.
type Service struct {
	store   *resource.Store[Course]
	threads *resource.Store[Thread]
}

func NewService(client core.RESTClient, logger core.Logger) *Service {
	return &Service{
		store: resource.NewStore[Course](client, resource.Options{
			Name:   "course",
			Path:   "/v1/courses",
			Mode:   resource.ServerPaged,
			Insert: resource.Prepend,
			Logger: logger,
		}),
		threads: resource.NewStore[Thread](client, resource.Options{
			Name:   "thread",
			Path:   "/v1/threads",
			Mode:   resource.ServerPaged,
			Insert: resource.Append, // sections are listed in creation order
			Logger: logger,
		}),
	}
}

func (svc *Service) State() resource.CollectionState[Course] {
	return svc.store.State()
}

func (svc *Service) List(ctx context.Context, page, size int, filter *Filter) (resource.CollectionState[Course], error) {
	var filters map[string]string
	if filter != nil {
		filters = filter.Map()
	}
	return svc.store.FetchPage(ctx, page, size, filters)
}

func (svc *Service) Get(ctx context.Context, id string) (Course, error) {
	return svc.store.FetchByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}
	return svc.store.Create(ctx, nc)
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	if err := uc.Validate(); err != nil {
		return Course{}, err
	}
	return svc.store.Update(ctx, id, uc)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.store.Remove(ctx, id)
}

// ListThreads fetches a course's sections, or all sections when courseID is "".
func (svc *Service) ListThreads(ctx context.Context, courseID string, page, size int) (resource.CollectionState[Thread], error) {
	filters := map[string]string{}
	if courseID != "" {
		filters["course_id"] = courseID
	}
	return svc.threads.FetchPage(ctx, page, size, filters)
}

func (svc *Service) CreateThread(ctx context.Context, nt NewThread) (Thread, error) {
	if err := nt.Validate(); err != nil {
		return Thread{}, err
	}
	return svc.threads.Create(ctx, nt)
}

func (svc *Service) DeleteThread(ctx context.Context, id string) error {
	return svc.threads.Remove(ctx, id)
}
