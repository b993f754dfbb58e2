package semester

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/resource"
)

// Service manages semesters and their nested breaks. The store is
// client-paged: the full set is fetched once and sliced in memory.
type Service struct {
	client core.RESTClient
	store  *resource.Store[Semester]
}

func NewService(client core.RESTClient, logger core.Logger) *Service {
	return &Service{
		client: client,
		store: resource.NewStore[Semester](client, resource.Options{
			Name:   "semester",
			Path:   "/v1/semesters",
			Mode:   resource.ClientPaged,
			Insert: resource.Prepend,
			Logger: logger,
		}),
	}
}

func (svc *Service) State() resource.CollectionState[Semester] {
	return svc.store.State()
}

func (svc *Service) List(ctx context.Context, page, size int) (resource.CollectionState[Semester], error) {
	return svc.store.FetchPage(ctx, page, size, nil)
}

func (svc *Service) Get(ctx context.Context, id string) (Semester, error) {
	return svc.store.FetchByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ns NewSemester) (Semester, error) {
	if err := ns.Validate(); err != nil {
		return Semester{}, err
	}
	return svc.store.Create(ctx, ns)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateSemester) (Semester, error) {
	if err := us.Validate(); err != nil {
		return Semester{}, err
	}
	return svc.store.Update(ctx, id, us)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.store.Remove(ctx, id)
}

// AddBreak creates a break under a semester and reconciles it into the loaded
// parent (same insert/replace rules, scoped to the owning record).
func (svc *Service) AddBreak(ctx context.Context, semesterID string, nb NewBreak) (Break, error) {
	if err := nb.Validate(); err != nil {
		return Break{}, err
	}
	raw, err := svc.client.Post(ctx, "/v1/semesters/"+semesterID+"/breaks", nb)
	if err != nil {
		return Break{}, err
	}
	var brk Break
	if err = json.Unmarshal(raw, &brk); err != nil {
		return Break{}, errors.Wrap(err, "decoding created break")
	}

	if sem, ok := svc.loadedSemester(semesterID); ok {
		sem.Breaks = resource.Insert(sem.Breaks, brk, resource.Append)
		svc.store.Reconcile(sem)
	}
	return brk, nil
}

// RemoveBreak deletes a break and reconciles the loaded parent.
func (svc *Service) RemoveBreak(ctx context.Context, semesterID, breakID string) error {
	if _, err := svc.client.Delete(ctx, "/v1/semesters/"+semesterID+"/breaks/"+breakID); err != nil {
		return err
	}
	if sem, ok := svc.loadedSemester(semesterID); ok {
		sem.Breaks = resource.RemoveByID(sem.Breaks, breakID)
		svc.store.Reconcile(sem)
	}
	return nil
}

func (svc *Service) loadedSemester(id string) (Semester, bool) {
	state := svc.store.State()
	for _, sem := range state.Items {
		if sem.EntityID() == id {
			return sem, true
		}
	}
	if state.Selected != nil && state.Selected.EntityID() == id {
		return *state.Selected, true
	}
	return Semester{}, false
}
