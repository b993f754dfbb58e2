package semester

import (
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
)

// Semester is small and rarely long-listed; the endpoint returns the bare,
// unpaginated array and screens page it client-side.
type Semester struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Breaks    []Break   `json:"breaks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Semester) EntityID() string { return strconv.Itoa(s.ID) }

// Break is a nested child collection of its Semester.
type Break struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (b Break) EntityID() string { return strconv.Itoa(b.ID) }

type NewSemester struct {
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

func (ns *NewSemester) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.TranslateError(core.Validate.Struct(ns))
}

type UpdateSemester struct {
	Name      null.String `json:"name,omitempty"`
	StartDate null.Time   `json:"start_date,omitempty"`
	EndDate   null.Time   `json:"end_date,omitempty"`
}

func (us *UpdateSemester) Validate() error {
	if us.Name.Valid {
		us.Name.String = core.CleanString(us.Name.String)
	}
	return core.TranslateError(core.Validate.Struct(us))
}

type NewBreak struct {
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

func (nb *NewBreak) Validate() error {
	nb.Name = core.CleanString(nb.Name)
	return core.TranslateError(core.Validate.Struct(nb))
}
