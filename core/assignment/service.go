package assignment

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/resource"
)

// Service manages assignment groups and their nested assignments and
// attachments. Child mutations reconcile into the loaded parent with the same
// insert/replace/remove rules, scoped by the parent's id.
type Service struct {
	client core.RESTClient
	groups *resource.Store[Group]
}

func NewService(client core.RESTClient, logger core.Logger) *Service {
	return &Service{
		client: client,
		groups: resource.NewStore[Group](client, resource.Options{
			Name:   "assignment_group",
			Path:   "/v1/assignment-groups",
			Mode:   resource.ServerPaged,
			Insert: resource.Prepend,
			Logger: logger,
		}),
	}
}

func (svc *Service) State() resource.CollectionState[Group] {
	return svc.groups.State()
}

func (svc *Service) List(ctx context.Context, courseID string, page, size int) (resource.CollectionState[Group], error) {
	filters := map[string]string{}
	if courseID != "" {
		filters["course_id"] = courseID
	}
	return svc.groups.FetchPage(ctx, page, size, filters)
}

func (svc *Service) Get(ctx context.Context, id string) (Group, error) {
	return svc.groups.FetchByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ng NewGroup) (Group, error) {
	if err := ng.Validate(); err != nil {
		return Group{}, err
	}
	return svc.groups.Create(ctx, ng)
}

func (svc *Service) Update(ctx context.Context, id string, ug UpdateGroup) (Group, error) {
	if err := ug.Validate(); err != nil {
		return Group{}, err
	}
	return svc.groups.Update(ctx, id, ug)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.groups.Remove(ctx, id)
}

// AddAssignment creates an assignment under a group and reconciles the parent.
func (svc *Service) AddAssignment(ctx context.Context, groupID string, na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	raw, err := svc.client.Post(ctx, "/v1/assignment-groups/"+groupID+"/assignments", na)
	if err != nil {
		return Assignment{}, err
	}
	var asg Assignment
	if err = json.Unmarshal(raw, &asg); err != nil {
		return Assignment{}, errors.Wrap(err, "decoding created assignment")
	}

	if grp, ok := svc.loadedGroup(groupID); ok {
		grp.Assignments = resource.Insert(grp.Assignments, asg, resource.Append)
		svc.groups.Reconcile(grp)
	}
	return asg, nil
}

// RemoveAssignment deletes an assignment and reconciles the parent.
func (svc *Service) RemoveAssignment(ctx context.Context, groupID, assignmentID string) error {
	if _, err := svc.client.Delete(ctx, "/v1/assignment-groups/"+groupID+"/assignments/"+assignmentID); err != nil {
		return err
	}
	if grp, ok := svc.loadedGroup(groupID); ok {
		grp.Assignments = resource.RemoveByID(grp.Assignments, assignmentID)
		svc.groups.Reconcile(grp)
	}
	return nil
}

// AddAttachment uploads attachment metadata under an assignment; attachments
// append (upload order matters to readers).
func (svc *Service) AddAttachment(ctx context.Context, groupID, assignmentID string, att Attachment) (Attachment, error) {
	raw, err := svc.client.Post(ctx, "/v1/assignment-groups/"+groupID+"/assignments/"+assignmentID+"/attachments", att)
	if err != nil {
		return Attachment{}, err
	}
	var created Attachment
	if err = json.Unmarshal(raw, &created); err != nil {
		return Attachment{}, errors.Wrap(err, "decoding created attachment")
	}

	if grp, ok := svc.loadedGroup(groupID); ok {
		for _, asg := range grp.Assignments {
			if asg.EntityID() == assignmentID {
				// copy-on-write: the assignments slice backs live snapshots
				asg.Attachments = resource.Insert(asg.Attachments, created, resource.Append)
				grp.Assignments = resource.Replace(grp.Assignments, asg)
				svc.groups.Reconcile(grp)
				break
			}
		}
	}
	return created, nil
}

func (svc *Service) loadedGroup(id string) (Group, bool) {
	state := svc.groups.State()
	for _, grp := range state.Items {
		if grp.EntityID() == id {
			return grp, true
		}
	}
	if state.Selected != nil && state.Selected.EntityID() == id {
		return *state.Selected, true
	}
	return Group{}, false
}
