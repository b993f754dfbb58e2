package user

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
)

// Roles
const (
	// Admin
	RoleAdmin          = "admin:"
	RoleAdminOwner     = "admin:owner"
	RoleAdminPrincipal = "admin:principal"

	// Teacher
	RoleTeacher = "teacher:"

	// Student
	RoleStudent = "student:"
)

var (
	AdminRoles   = []string{RoleAdmin, RoleAdminOwner, RoleAdminPrincipal}
	TeacherRoles = []string{RoleTeacher}
	StudentRoles = []string{RoleStudent}
	AllRoles     = getAllRoles()

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Principal", Value: RoleAdminPrincipal},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}
)

func getAllRoles() []string {
	all := make([]string, 0, 5)
	all = append(all, AdminRoles...)
	all = append(all, TeacherRoles...)
	all = append(all, StudentRoles...)
	return all
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}

func (u User) EntityID() string { return u.ID }

func (u User) roleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool   { return u.roleStartsWith(RoleAdmin) }
func (u User) IsTeacher() bool { return u.roleStartsWith(RoleTeacher) }
func (u User) IsStudent() bool { return u.roleStartsWith(RoleStudent) }

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name            string   `json:"name" validate:"required"`
	Username        string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Password        string   `json:"password" validate:"required"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
}

func (nu *NewUser) Validate() error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	return core.TranslateError(core.Validate.Struct(nu))
}

// UpdateUser defines what may be modified on an existing User; unset fields
// are left untouched server-side. Username/email/password rules are enforced
// at struct level (see validators.go).
type UpdateUser struct {
	Name            null.String `json:"name,omitempty"`
	Username        null.String `json:"username,omitempty"`
	Email           null.String `json:"email,omitempty"`
	IsActive        null.Bool   `json:"is_active,omitempty"`
	Roles           []string    `json:"roles,omitempty" validate:"omitempty,allroles"`
	Password        string      `json:"password,omitempty"`
	PasswordConfirm string      `json:"password_confirm,omitempty" validate:"eqfield=Password"`
}

func (uu *UpdateUser) Validate() error {
	if uu.Name.Valid {
		uu.Name.String = core.CleanString(uu.Name.String)
	}
	if uu.Username.Valid {
		uu.Username.String = core.CleanString(uu.Username.String, true /* lower */)
	}
	if uu.Email.Valid {
		uu.Email.String = core.CleanString(uu.Email.String, true /* lower */)
	}
	return core.TranslateError(core.Validate.Struct(uu))
}

// Filter narrows user list fetches. Search does a case-insensitive match on
// one of Name, Username or Email server-side.
type Filter struct {
	Search   string
	Role     string
	IsActive string // "", "true" or "false"
}

func (f Filter) Map() map[string]string {
	return map[string]string{
		"search":    core.CleanString(f.Search, true /* lower */),
		"role":      f.Role,
		"is_active": f.IsActive,
	}
}
