package user

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/resource"
)

// Service manages the platform's user collection through a resource store.
// The users endpoint paginates Spring-style ({content, totalElements, ...});
// the store's normalizer absorbs that.
type Service struct {
	client core.RESTClient
	store  *resource.Store[User]
}

func NewService(client core.RESTClient, logger core.Logger) *Service {
	return &Service{
		client: client,
		store: resource.NewStore[User](client, resource.Options{
			Name:   "user",
			Path:   "/v1/users",
			Mode:   resource.ServerPaged,
			Insert: resource.Prepend, // newest first
			Logger: logger,
		}),
	}
}

func (svc *Service) State() resource.CollectionState[User] {
	return svc.store.State()
}

func (svc *Service) List(ctx context.Context, page, size int, filter *Filter) (resource.CollectionState[User], error) {
	var filters map[string]string
	if filter != nil {
		filters = filter.Map()
	}
	return svc.store.FetchPage(ctx, page, size, filters)
}

func (svc *Service) Get(ctx context.Context, id string) (User, error) {
	return svc.store.FetchByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	return svc.store.Create(ctx, nu)
}

func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	if err := uu.Validate(); err != nil {
		return User{}, err
	}
	return svc.store.Update(ctx, id, uu)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.store.Remove(ctx, id)
}

func (svc *Service) SetFilters(partial map[string]string) { svc.store.SetFilters(partial) }
func (svc *Service) ClearFilters()                        { svc.store.ClearFilters() }

// QueryRoles lists the assignable roles from the platform.
func (svc *Service) QueryRoles(ctx context.Context) ([]Role, error) {
	raw, err := svc.client.Get(ctx, "/v1/users/roles", nil)
	if err != nil {
		return nil, err
	}
	var roles []Role
	if err = json.Unmarshal(raw, &roles); err != nil {
		return nil, errors.Wrap(err, "decoding roles")
	}
	return roles, nil
}
