package campus

import (
	"context"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/resource"
)

// Service manages campus infrastructure: locations, sport types, facilities
// and their schedules. Locations and sport types are short client-paged
// lists; facilities and schedules page server-side.
type Service struct {
	locations  *resource.Store[Location]
	sportTypes *resource.Store[SportType]
	facilities *resource.Store[Facility]
	schedules  *resource.Store[Schedule]
}

func NewService(client core.RESTClient, logger core.Logger) *Service {
	return &Service{
		locations: resource.NewStore[Location](client, resource.Options{
			Name:   "location",
			Path:   "/v1/locations",
			Mode:   resource.ClientPaged,
			Insert: resource.Prepend,
			Logger: logger,
		}),
		sportTypes: resource.NewStore[SportType](client, resource.Options{
			Name:   "sport_type",
			Path:   "/v1/sport-types",
			Mode:   resource.ClientPaged,
			Insert: resource.Append,
			Logger: logger,
		}),
		facilities: resource.NewStore[Facility](client, resource.Options{
			Name:   "facility",
			Path:   "/v1/facilities",
			Mode:   resource.ServerPaged,
			Insert: resource.Prepend,
			Logger: logger,
		}),
		schedules: resource.NewStore[Schedule](client, resource.Options{
			Name: "schedule",
			Path: "/v1/schedules",
			Mode: resource.ServerPaged,
			// server-sorted by weekday/opens; the created slot's page is unknowable locally
			Insert: resource.RequireRefetch,
			Logger: logger,
		}),
	}
}

func (svc *Service) Locations() *resource.Store[Location]   { return svc.locations }
func (svc *Service) SportTypes() *resource.Store[SportType] { return svc.sportTypes }
func (svc *Service) Facilities() *resource.Store[Facility]  { return svc.facilities }
func (svc *Service) Schedules() *resource.Store[Schedule]   { return svc.schedules }

func (svc *Service) ListLocations(ctx context.Context, page, size int) (resource.CollectionState[Location], error) {
	return svc.locations.FetchPage(ctx, page, size, nil)
}

func (svc *Service) CreateLocation(ctx context.Context, nl NewLocation) (Location, error) {
	if err := nl.Validate(); err != nil {
		return Location{}, err
	}
	return svc.locations.Create(ctx, nl)
}

func (svc *Service) UpdateLocation(ctx context.Context, id string, ul UpdateLocation) (Location, error) {
	if err := ul.Validate(); err != nil {
		return Location{}, err
	}
	return svc.locations.Update(ctx, id, ul)
}

func (svc *Service) DeleteLocation(ctx context.Context, id string) error {
	return svc.locations.Remove(ctx, id)
}

func (svc *Service) ListFacilities(ctx context.Context, page, size int, locationID string) (resource.CollectionState[Facility], error) {
	filters := map[string]string{}
	if locationID != "" {
		filters["location_id"] = locationID
	}
	return svc.facilities.FetchPage(ctx, page, size, filters)
}

func (svc *Service) CreateFacility(ctx context.Context, nf NewFacility) (Facility, error) {
	if err := nf.Validate(); err != nil {
		return Facility{}, err
	}
	return svc.facilities.Create(ctx, nf)
}

// ListSchedules serves both the plain and the filtered schedule screens; pass
// a zero ScheduleFilter for the former.
func (svc *Service) ListSchedules(ctx context.Context, page, size int, filter ScheduleFilter) (resource.CollectionState[Schedule], error) {
	return svc.schedules.FetchPage(ctx, page, size, filter.Map())
}

// CreateSchedule creates a slot; the store's RequireRefetch policy leaves the
// loaded page alone, so callers re-fetch to see it in place.
func (svc *Service) CreateSchedule(ctx context.Context, ns NewSchedule) (Schedule, error) {
	if err := ns.Validate(); err != nil {
		return Schedule{}, err
	}
	return svc.schedules.Create(ctx, ns)
}

func (svc *Service) DeleteSchedule(ctx context.Context, id string) error {
	return svc.schedules.Remove(ctx, id)
}
