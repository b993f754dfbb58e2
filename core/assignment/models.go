package assignment

import (
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
)

// Group bundles a course's assignments (e.g. "Homework", "Exams"); its
// assignments and their attachments are nested child collections.
type Group struct {
	ID          int          `json:"id"`
	CourseID    int          `json:"course_id"`
	Title       string       `json:"title"`
	Weight      int          `json:"weight"` // percent of final grade
	Assignments []Assignment `json:"assignments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (g Group) EntityID() string { return strconv.Itoa(g.ID) }

type Assignment struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"due_date"`
	MaxPoints   int          `json:"max_points"`
	Attachments []Attachment `json:"attachments"`
}

func (a Assignment) EntityID() string { return strconv.Itoa(a.ID) }

type Attachment struct {
	ID          int    `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

func (at Attachment) EntityID() string { return strconv.Itoa(at.ID) }

type NewGroup struct {
	CourseID int    `json:"course_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Weight   int    `json:"weight" validate:"gte=0,lte=100"`
}

func (ng *NewGroup) Validate() error {
	ng.Title = core.CleanString(ng.Title)
	return core.TranslateError(core.Validate.Struct(ng))
}

type UpdateGroup struct {
	Title  null.String `json:"title,omitempty"`
	Weight null.Int    `json:"weight,omitempty"`
}

func (ug *UpdateGroup) Validate() error {
	if ug.Title.Valid {
		ug.Title.String = core.CleanString(ug.Title.String)
	}
	return core.TranslateError(core.Validate.Struct(ug))
}

type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	MaxPoints   int       `json:"max_points" validate:"gte=0"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	return core.TranslateError(core.Validate.Struct(na))
}
