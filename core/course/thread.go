package course

import (
	"strconv"

	"github.com/trezcool/masomo-admin/core"
)

// Thread is one taught section of a course within a semester.
type Thread struct {
	ID         int    `json:"id"`
	CourseID   int    `json:"course_id"`
	SemesterID int    `json:"semester_id"`
	Code       string `json:"code"`
	TeacherID  string `json:"teacher_id"`
	Capacity   int    `json:"capacity"`
	Enrolled   int    `json:"enrolled"`
}

func (t Thread) EntityID() string { return strconv.Itoa(t.ID) }

type NewThread struct {
	CourseID   int    `json:"course_id" validate:"required"`
	SemesterID int    `json:"semester_id" validate:"required"`
	Code       string `json:"code" validate:"required,alphanum_"`
	TeacherID  string `json:"teacher_id"`
	Capacity   int    `json:"capacity" validate:"gte=0"`
}

func (nt *NewThread) Validate() error {
	nt.Code = core.CleanString(nt.Code, true /* lower */)
	return core.TranslateError(core.Validate.Struct(nt))
}
