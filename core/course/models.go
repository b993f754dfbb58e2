package course

import (
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
)

type Course struct {
	ID          int       `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TeacherID   string    `json:"teacher_id"`
	Credits     int       `json:"credits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c Course) EntityID() string { return strconv.Itoa(c.ID) }

type NewCourse struct {
	Code        string `json:"code" validate:"required,alphanum_"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	TeacherID   string `json:"teacher_id"`
	Credits     int    `json:"credits" validate:"gte=0"`
}

func (nc *NewCourse) Validate() error {
	nc.Code = core.CleanString(nc.Code, true /* lower */)
	nc.Title = core.CleanString(nc.Title)
	return core.TranslateError(core.Validate.Struct(nc))
}

type UpdateCourse struct {
	Code        null.String `json:"code,omitempty"`
	Title       null.String `json:"title,omitempty"`
	Description null.String `json:"description,omitempty"`
	TeacherID   null.String `json:"teacher_id,omitempty"`
	Credits     null.Int    `json:"credits,omitempty"`
}

func (uc *UpdateCourse) Validate() error {
	if uc.Code.Valid {
		uc.Code.String = core.CleanString(uc.Code.String, true /* lower */)
	}
	if uc.Title.Valid {
		uc.Title.String = core.CleanString(uc.Title.String)
	}
	return core.TranslateError(core.Validate.Struct(uc))
}

type Filter struct {
	Search    string
	TeacherID string
}

func (f Filter) Map() map[string]string {
	return map[string]string{
		"search":     core.CleanString(f.Search, true /* lower */),
		"teacher_id": f.TeacherID,
	}
}
