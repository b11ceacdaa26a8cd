package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"worknest-console/internal/config"
	"worknest-console/internal/middleware"
	"worknest-console/internal/models"
	"worknest-console/internal/navigation"
	"worknest-console/internal/realtime"
	"worknest-console/internal/screen"
	"worknest-console/internal/session"
	"worknest-console/internal/testutil"
	"worknest-console/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t       *testing.T
	router  *gin.Engine
	backend *testutil.Backend
	store   *session.Store
	screens *screen.Registry
	hub     *realtime.Hub
	h       *Handler
}

func ptr[T any](v T) *T { return &v }

func seedBackend(b *testutil.Backend) {
	b.Employees = []models.Employee{
		{EmpID: 1, Name: "Ada Admin", RoleID: int(models.RoleAdmin), Email: "ada@example.com", CompanyID: 1},
		{EmpID: 2, Name: "Paul Manager", RoleID: int(models.RoleProjectManager), Email: "paul@example.com", CompanyID: 1},
		{EmpID: 3, Name: "Erin Employee", RoleID: int(models.RoleEmployee), Email: "erin@example.com", CompanyID: 1},
		{EmpID: 5, Name: "Gus Guest", RoleID: 99, Email: "gus@example.com", CompanyID: 1},
	}
	b.Projects = []models.Project{
		{ProjectID: 10, Name: "Apollo", ProjectManager: 2, Priority: "High", CompanyID: 1, IsActive: true},
	}
	b.Tasks = []models.Task{
		{TaskID: 100, Name: "Design", ProjectID: 10, AssignedTo: ptr(int64(3)), Status: models.TaskPending, Priority: "High", CompanyID: 1},
		{TaskID: 101, Name: "Build", ProjectID: 10, Status: models.TaskOngoing, Priority: "Low", CompanyID: 1},
		{TaskID: 300, Name: "Foreign", ProjectID: 30, Status: models.TaskPending, Priority: "Low", CompanyID: 2},
	}
	b.Logs = []models.TimeLog{
		{LogID: 1, EmpID: 3, TaskID: 100, Date: models.NewDate(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)), HoursSpent: 2, CompanyID: 1, IsActive: true},
	}
	b.Assignments = []models.ProjectEmployee{
		{ProjectEmployeeID: 500, EmpID: 3, ProjectID: 10, ProjectRoleID: 1, CompanyID: 1, IsActive: true},
	}
	b.Roles = []models.Role{
		{RoleID: int(models.RoleAdmin), Role: "Admin", CompanyID: 1, IsActive: true},
		{RoleID: 30, Role: "Auditor", CompanyID: 1, IsActive: true},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := testutil.NewBackend(t)
	seedBackend(backend)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	nav, err := navigation.Default()
	require.NoError(t, err)

	store := session.NewStore(db, time.Hour)
	screens := screen.NewRegistry(time.Minute)
	hub := realtime.NewHub()
	svc := views.NewService(backend.Client(), config.PageLimits{Tasks: 10, Projects: 10, Employees: 10, Report: 10, Roles: 10}, hub)
	h := New(svc, store, screens, nav, hub)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/login", h.Login)
	protected := api.Group("")
	protected.Use(middleware.SessionAuth(store, nav.LoginPath()))
	protected.POST("/logout", h.Logout)
	protected.GET("/session", h.Me)
	protected.GET("/nav", h.Targets)
	protected.GET("/nav/:target", h.Navigate)
	protected.GET("/tasks", h.ListTasks)
	protected.GET("/tasks/:id", h.TaskDetail)
	protected.POST("/tasks", h.CreateTask)
	protected.PATCH("/tasks/:id/status", h.UpdateTaskStatus)
	protected.DELETE("/tasks/:id", h.DeleteTask)
	protected.GET("/projects/:id", h.ProjectDetail)
	protected.DELETE("/projects/:id", h.DeleteProject)
	protected.GET("/reports/export", h.ExportReport)
	protected.GET("/dashboard/employee", h.EmployeeDashboard)
	protected.GET("/roles/paginated", h.ListRolePage)
	protected.POST("/roles", h.CreateRole)
	protected.PUT("/roles/:id", h.UpdateRole)
	protected.DELETE("/roles/:id", h.DeleteRole)

	return &fixture{t: t, router: r, backend: backend, store: store, screens: screens, hub: hub, h: h}
}

func (f *fixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	f.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// login signs in as the seeded employee with the given email and role.
func (f *fixture) login(email string, userID int64, role models.RoleCode) string {
	f.t.Helper()
	f.backend.LoginToken = testutil.BackendToken(email, userID, role, 1)
	w := f.do(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "secret"})
	require.Equal(f.t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(f.t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func noticeCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	notice, ok := decode(t, w)["notice"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	code, _ := notice["code"].(string)
	return code
}
