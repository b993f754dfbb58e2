package degree

import (
	"context"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/resource"
)

// Service manages degrees and their related collections. These endpoints use
// the plural-key envelope ({degrees: [...], total_count, page}); the store
// names derive the keys.
type Service struct {
	degrees        *resource.Store[Degree]
	degreeCourses  *resource.Store[DegreeCourse]
	studentDegrees *resource.Store[StudentDegree]
}

func NewService(client core.RESTClient, logger core.Logger) *Service {
	return &Service{
		degrees: resource.NewStore[Degree](client, resource.Options{
			Name:   "degree",
			Path:   "/v1/degrees",
			Mode:   resource.ServerPaged,
			Insert: resource.Prepend,
			Logger: logger,
		}),
		degreeCourses: resource.NewStore[DegreeCourse](client, resource.Options{
			Name:   "degree_course",
			Path:   "/v1/degree-courses",
			Mode:   resource.ServerPaged,
			Insert: resource.Append, // curricula are built in order
			Logger: logger,
		}),
		studentDegrees: resource.NewStore[StudentDegree](client, resource.Options{
			Name:   "student_degree",
			Path:   "/v1/student-degrees",
			Mode:   resource.ServerPaged,
			Insert: resource.Prepend,
			Logger: logger,
		}),
	}
}

func (svc *Service) State() resource.CollectionState[Degree] {
	return svc.degrees.State()
}

func (svc *Service) List(ctx context.Context, page, size int, search string) (resource.CollectionState[Degree], error) {
	var filters map[string]string
	if search != "" {
		filters = map[string]string{"search": core.CleanString(search, true /* lower */)}
	}
	return svc.degrees.FetchPage(ctx, page, size, filters)
}

func (svc *Service) Get(ctx context.Context, id string) (Degree, error) {
	return svc.degrees.FetchByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nd NewDegree) (Degree, error) {
	if err := nd.Validate(); err != nil {
		return Degree{}, err
	}
	return svc.degrees.Create(ctx, nd)
}

func (svc *Service) Update(ctx context.Context, id string, ud UpdateDegree) (Degree, error) {
	if err := ud.Validate(); err != nil {
		return Degree{}, err
	}
	return svc.degrees.Update(ctx, id, ud)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.degrees.Remove(ctx, id)
}

// ListCourses fetches a degree's curriculum page.
func (svc *Service) ListCourses(ctx context.Context, degreeID string, page, size int) (resource.CollectionState[DegreeCourse], error) {
	return svc.degreeCourses.FetchPage(ctx, page, size, map[string]string{"degree_id": degreeID})
}

// ListStudents fetches enrollments, optionally narrowed to one degree.
func (svc *Service) ListStudents(ctx context.Context, degreeID string, page, size int) (resource.CollectionState[StudentDegree], error) {
	filters := map[string]string{}
	if degreeID != "" {
		filters["degree_id"] = degreeID
	}
	return svc.studentDegrees.FetchPage(ctx, page, size, filters)
}
