// Package testutil runs a fake platform API for tests: a handful of endpoints
// that reproduce the real backend's behavior, including its disagreeing list
// envelopes and its error envelope.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/degree"
	"github.com/trezcool/masomo-admin/core/semester"
	"github.com/trezcool/masomo-admin/core/user"
)

var jwtSecret = []byte("t3sts3cr3t")

// APIServer is an in-memory stand-in for the platform backend. Each list
// endpoint paginates the way the real one does:
//
//	/v1/users     {content, totalElements, totalPages, number, size} (zero-indexed)
//	/v1/courses   {data, meta: {total, page, page_size}}
//	/v1/degrees   {degrees, total_count, page}
//	/v1/semesters bare array
type APIServer struct {
	srv *httptest.Server

	mu        sync.Mutex
	users     []user.User
	courses   []course.Course
	degrees   []degree.Degree
	semesters []semester.Semester
	nextID    int
	password  string
}

func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()

	s := &APIServer{nextID: 1, password: "S3cr3t.Pwd"}

	e := echo.New()
	e.HideBanner = true
	e.POST("/v1/users/login", s.login)
	v1 := e.Group("/v1", s.requireAuth)
	v1.GET("/users", s.listUsers)
	v1.GET("/users/roles", s.listRoles)
	v1.GET("/users/:id", s.getUser)
	v1.POST("/users", s.createUser)
	v1.PUT("/users/:id", s.updateUser)
	v1.DELETE("/users/:id", s.deleteUser)
	v1.GET("/courses", s.listCourses)
	v1.GET("/degrees", s.listDegrees)
	v1.GET("/semesters", s.listSemesters)

	s.srv = httptest.NewServer(e)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *APIServer) URL() string { return s.srv.URL }

// Password is the password every seeded account logs in with.
func (s *APIServer) Password() string { return s.password }

// SeedUsers creates n active users named "User 1".."User n".
func (s *APIServer) SeedUsers(n int) []user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]user.User, 0, n)
	for i := 0; i < n; i++ {
		usr := user.User{
			ID:        strconv.Itoa(s.nextID),
			Name:      fmt.Sprintf("User %d", s.nextID),
			Username:  fmt.Sprintf("user%d", s.nextID),
			Email:     fmt.Sprintf("user%d@test.cd", s.nextID),
			IsActive:  true,
			Roles:     []string{user.RoleStudent},
			CreatedAt: time.Now().UTC(),
		}
		s.nextID++
		s.users = append(s.users, usr)
		out = append(out, usr)
	}
	return out
}

func (s *APIServer) SeedCourses(n int) []course.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]course.Course, 0, n)
	for i := 0; i < n; i++ {
		crs := course.Course{
			ID:      s.nextID,
			Code:    fmt.Sprintf("crs%d", s.nextID),
			Title:   fmt.Sprintf("Course %d", s.nextID),
			Credits: 3,
		}
		s.nextID++
		s.courses = append(s.courses, crs)
		out = append(out, crs)
	}
	return out
}

func (s *APIServer) SeedDegrees(n int) []degree.Degree {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]degree.Degree, 0, n)
	for i := 0; i < n; i++ {
		deg := degree.Degree{
			ID:   s.nextID,
			Code: fmt.Sprintf("deg%d", s.nextID),
			Name: fmt.Sprintf("Degree %d", s.nextID),
		}
		s.nextID++
		s.degrees = append(s.degrees, deg)
		out = append(out, deg)
	}
	return out
}

func (s *APIServer) SeedSemesters(n int) []semester.Semester {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]semester.Semester, 0, n)
	for i := 0; i < n; i++ {
		sem := semester.Semester{
			ID:   s.nextID,
			Name: fmt.Sprintf("Semester %d", s.nextID),
		}
		s.nextID++
		s.semesters = append(s.semesters, sem)
		out = append(out, sem)
	}
	return out
}

// Token returns a signed JWT for usr, expiring in an hour.
func (s *APIServer) Token(t *testing.T, usr user.User) string {
	t.Helper()
	return s.signToken(t, usr, time.Now().Add(time.Hour))
}

// ExpiredToken returns a signed JWT for usr that expired an hour ago.
func (s *APIServer) ExpiredToken(t *testing.T, usr user.User) string {
	t.Helper()
	return s.signToken(t, usr, time.Now().Add(-time.Hour))
}

func (s *APIServer) signToken(t *testing.T, usr user.User, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      usr.ID,
		"exp":      exp.Unix(),
		"username": usr.Username,
		"email":    usr.Email,
		"is_admin": usr.IsAdmin(),
		"roles":    usr.Roles,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

// ----- handlers -----

func (s *APIServer) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
		}
		token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(*jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}
		return next(c)
	}
}

func (s *APIServer) login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	s.mu.Lock()
	var found *user.User
	for i := range s.users {
		if s.users[i].Username == body.Username || s.users[i].Email == body.Username {
			found = &s.users[i]
			break
		}
	}
	s.mu.Unlock()

	if found == nil || body.Password != s.password {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	claims := jwt.MapClaims{
		"sub":      found.ID,
		"exp":      time.Now().Add(time.Hour).Unix(),
		"username": found.Username,
		"email":    found.Email,
		"is_admin": found.IsAdmin(),
		"roles":    found.Roles,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (s *APIServer) listUsers(c echo.Context) error {
	page, size := pageParams(c)

	s.mu.Lock()
	matched := make([]user.User, 0, len(s.users))
	search := strings.ToLower(c.QueryParam("search"))
	role := c.QueryParam("role")
	for _, usr := range s.users {
		if search != "" &&
			!strings.Contains(strings.ToLower(usr.Name), search) &&
			!strings.Contains(usr.Username, search) &&
			!strings.Contains(usr.Email, search) {
			continue
		}
		if role != "" && !hasRolePrefix(usr.Roles, role) {
			continue
		}
		matched = append(matched, usr)
	}
	s.mu.Unlock()

	total := len(matched)
	win := window(len(matched), page, size)
	pages := (total + size - 1) / size
	return c.JSON(http.StatusOK, echo.Map{
		"content":       matched[win[0]:win[1]],
		"totalElements": total,
		"totalPages":    pages,
		"number":        page - 1, // zero-indexed, like the real thing
		"size":          size,
	})
}

func (s *APIServer) listRoles(c echo.Context) error {
	return c.JSON(http.StatusOK, user.Roles)
}

func (s *APIServer) getUser(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, usr := range s.users {
		if usr.ID == c.Param("id") {
			return c.JSON(http.StatusOK, usr)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
}

func (s *APIServer) createUser(c echo.Context) error {
	var nu user.NewUser
	if err := c.Bind(&nu); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if nu.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"name": "name is a required field"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, usr := range s.users {
		if (nu.Username != "" && usr.Username == nu.Username) || (nu.Email != "" && usr.Email == nu.Email) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a user with this username or email already exists"})
		}
	}
	usr := user.User{
		ID:        strconv.Itoa(s.nextID),
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		IsActive:  true,
		Roles:     nu.Roles,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.users = append(s.users, usr)
	return c.JSON(http.StatusCreated, usr)
}

func (s *APIServer) updateUser(c echo.Context) error {
	var uu user.UpdateUser
	if err := c.Bind(&uu); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != c.Param("id") {
			continue
		}
		if uu.Name.Valid {
			s.users[i].Name = uu.Name.String
		}
		if uu.Username.Valid {
			s.users[i].Username = uu.Username.String
		}
		if uu.Email.Valid {
			s.users[i].Email = uu.Email.String
		}
		if uu.IsActive.Valid {
			s.users[i].IsActive = uu.IsActive.Bool
		}
		if uu.Roles != nil {
			s.users[i].Roles = uu.Roles
		}
		s.users[i].UpdatedAt = time.Now().UTC()
		return c.JSON(http.StatusOK, s.users[i])
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
}

func (s *APIServer) deleteUser(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == c.Param("id") {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
}

func (s *APIServer) listCourses(c echo.Context) error {
	page, size := pageParams(c)

	s.mu.Lock()
	matched := make([]course.Course, 0, len(s.courses))
	search := strings.ToLower(c.QueryParam("search"))
	for _, crs := range s.courses {
		if search != "" &&
			!strings.Contains(crs.Code, search) &&
			!strings.Contains(strings.ToLower(crs.Title), search) {
			continue
		}
		matched = append(matched, crs)
	}
	s.mu.Unlock()

	win := window(len(matched), page, size)
	return c.JSON(http.StatusOK, echo.Map{
		"data": matched[win[0]:win[1]],
		"meta": echo.Map{"total": len(matched), "page": page, "page_size": size},
	})
}

func (s *APIServer) listDegrees(c echo.Context) error {
	page, size := pageParams(c)

	s.mu.Lock()
	matched := append([]degree.Degree(nil), s.degrees...)
	s.mu.Unlock()

	win := window(len(matched), page, size)
	return c.JSON(http.StatusOK, echo.Map{
		"degrees":     matched[win[0]:win[1]],
		"total_count": len(matched),
		"page":        page,
	})
}

func (s *APIServer) listSemesters(c echo.Context) error {
	s.mu.Lock()
	matched := append([]semester.Semester(nil), s.semesters...)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, matched)
}

// ----- helpers -----

func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 {
		size = 20
	}
	return page, size
}

func window(total, page, size int) [2]int {
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return [2]int{start, end}
}

func hasRolePrefix(roles []string, prefix string) bool {
	for _, r := range roles {
		if strings.HasPrefix(r, prefix) {
			return true
		}
	}
	return false
}
