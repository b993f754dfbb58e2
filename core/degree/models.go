package degree

import (
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
)

type Degree struct {
	ID          int       `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d Degree) EntityID() string { return strconv.Itoa(d.ID) }

// DegreeCourse links a course into a degree's curriculum.
type DegreeCourse struct {
	ID       int  `json:"id"`
	DegreeID int  `json:"degree_id"`
	CourseID int  `json:"course_id"`
	Year     int  `json:"year"`
	Required bool `json:"required"`
}

func (dc DegreeCourse) EntityID() string { return strconv.Itoa(dc.ID) }

// StudentDegree is a student's enrollment in a degree.
type StudentDegree struct {
	ID        int       `json:"id"`
	StudentID string    `json:"student_id"`
	DegreeID  int       `json:"degree_id"`
	StartedAt time.Time `json:"started_at"`
	Completed bool      `json:"completed"`
}

func (sd StudentDegree) EntityID() string { return strconv.Itoa(sd.ID) }

type NewDegree struct {
	Code        string `json:"code" validate:"required,alphanum_"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (nd *NewDegree) Validate() error {
	nd.Code = core.CleanString(nd.Code, true /* lower */)
	nd.Name = core.CleanString(nd.Name)
	return core.TranslateError(core.Validate.Struct(nd))
}

type UpdateDegree struct {
	Code        null.String `json:"code,omitempty"`
	Name        null.String `json:"name,omitempty"`
	Description null.String `json:"description,omitempty"`
}

func (ud *UpdateDegree) Validate() error {
	if ud.Code.Valid {
		ud.Code.String = core.CleanString(ud.Code.String, true /* lower */)
	}
	if ud.Name.Valid {
		ud.Name.String = core.CleanString(ud.Name.String)
	}
	return core.TranslateError(core.Validate.Struct(ud))
}
