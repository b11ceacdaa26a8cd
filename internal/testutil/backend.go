package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"worknest-console/internal/models"
	"worknest-console/internal/remote"

	"github.com/golang-jwt/jwt/v5"
)

// Request is one call the fake backend received.
type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// Backend is an in-process stand-in for the collaborator REST API, serving
// whatever tables the test fills in.
type Backend struct {
	Server *httptest.Server

	mu           sync.Mutex
	Employees    []models.Employee
	Projects     []models.Project
	Tasks        []models.Task
	Logs         []models.TimeLog
	Assignments  []models.ProjectEmployee
	ProjectRoles []models.ProjectRole
	Roles        []models.Role
	// LoginToken is returned by POST /login; empty answers 401.
	LoginToken string

	failures map[string]int
	requests []Request
	nextID   int64
}

// NewBackend starts a fake backend that is closed with the test.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{failures: make(map[string]int), nextID: 1000}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

// Client returns a remote client pointed at the backend.
func (b *Backend) Client() *remote.Client {
	return remote.NewClient(b.Server.URL, "", 5*time.Second)
}

// Fail makes every request for path answer status.
func (b *Backend) Fail(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = status
}

// Requests returns the calls received for method and path.
func (b *Backend) Requests(method, path string) []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Request
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Calls returns every call in arrival order as "METHOD /path".
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.requests))
	for _, r := range b.requests {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

// BackendToken mints a collaborator access token with the claims the login flow reads.
func BackendToken(email string, userID int64, role models.RoleCode, companyID int64) string {
	claims := jwt.MapClaims{
		"sub":     email,
		"user_id": userID,
		"role":    int(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	if companyID != 0 {
		claims["company_id"] = companyID
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		panic(err)
	}
	return token
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	if status, ok := b.failures[r.URL.Path]; ok {
		writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
		return
	}

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && path == "/login":
		if b.LoginToken == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, remote.LoginResponse{AccessToken: b.LoginToken, TokenType: "bearer"})
	case path == "/alltasks":
		writeJSON(w, http.StatusOK, nonNil(b.Tasks))
	case path == "/allprojects":
		writeJSON(w, http.StatusOK, nonNil(b.Projects))
	case path == "/allemployees":
		writeJSON(w, http.StatusOK, nonNil(b.Employees))
	case path == "/alllogtimes":
		writeJSON(w, http.StatusOK, nonNil(b.Logs))
	case path == "/projectroles":
		writeJSON(w, http.StatusOK, nonNil(b.ProjectRoles))
	case path == "/allroles":
		writeJSON(w, http.StatusOK, nonNil(b.Roles))
	case strings.HasPrefix(path, "/tasks/by-manager/"):
		id := tailID(path)
		managed := make(map[int64]bool)
		for _, p := range b.Projects {
			if p.ProjectManager == id {
				managed[p.ProjectID] = true
			}
		}
		out := []models.Task{}
		for _, t := range b.Tasks {
			if managed[t.ProjectID] {
				out = append(out, t)
			}
		}
		writeJSON(w, http.StatusOK, out)
	case strings.HasPrefix(path, "/tasks/by-assigned/"):
		id := tailID(path)
		out := []models.Task{}
		for _, t := range b.Tasks {
			if t.Assignee() == id {
				out = append(out, t)
			}
		}
		writeJSON(w, http.StatusOK, out)
	case path == "/projects/by-manager":
		id, _ := strconv.ParseInt(r.URL.Query().Get("emp_id"), 10, 64)
		out := []models.Project{}
		for _, p := range b.Projects {
			if p.ProjectManager == id {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	case strings.HasPrefix(path, "/logtimes/by-task/"):
		id := tailID(path)
		out := []models.TimeLog{}
		for _, l := range b.Logs {
			if l.TaskID == id {
				out = append(out, l)
			}
		}
		if len(out) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No logs found"})
			return
		}
		writeJSON(w, http.StatusOK, out)
	case r.Method == http.MethodGet && path == "/project-employees":
		b.serveAssignments(w, r, false)
	case path == "/project-employees/by-company-project":
		b.serveAssignments(w, r, true)
	case r.Method == http.MethodPost && path == "/employees/paginated":
		b.serveEmployeePage(w, body)
	case r.Method == http.MethodPost && path == "/roles/paginated":
		b.serveRolePage(w, body)
	case r.Method == http.MethodPost && path == "/roles":
		b.createRole(w, body)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/projects/"):
		id := tailID(path)
		for _, p := range b.Projects {
			if p.ProjectID == id {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Project not found"})
	case r.Method == http.MethodPost && path == "/tasks":
		b.createTask(w, body)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/tasks/"):
		b.updateTask(w, tailID(path), body)
	case r.Method == http.MethodPost && path == "/logtimes":
		b.createLog(w, body)
	case r.Method == http.MethodPost && path == "/upload":
		b.upload(w, r)
	case r.Method == http.MethodPost, r.Method == http.MethodPut, r.Method == http.MethodDelete:
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

// serveAssignments lists assignments by status, and by company and project when scoped.
func (b *Backend) serveAssignments(w http.ResponseWriter, r *http.Request, scoped bool) {
	q := r.URL.Query()
	companyID, _ := strconv.ParseInt(q.Get("company_id"), 10, 64)
	projectID, _ := strconv.ParseInt(q.Get("project_id"), 10, 64)
	status := models.AssignmentStatus(q.Get("status"))

	out := []models.ProjectEmployee{}
	for _, a := range b.Assignments {
		if scoped && (a.CompanyID != companyID || a.ProjectID != projectID) {
			continue
		}
		if (status == models.AssignmentsActive && !a.Active()) || (status == models.AssignmentsInactive && a.Active()) {
			continue
		}
		out = append(out, a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) serveEmployeePage(w http.ResponseWriter, body []byte) {
	var req remote.EmployeePageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	matched := []models.Employee{}
	for _, e := range b.Employees {
		if e.CompanyID != req.CompanyID {
			continue
		}
		if req.RoleID != nil && e.RoleID != *req.RoleID {
			continue
		}
		if req.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(req.Search)) {
			continue
		}
		matched = append(matched, e)
	}

	page := remote.EmployeePage{Data: []models.Employee{}, Total: len(matched), PageLimit: req.PageLimit}
	if page.Total > 0 && req.PageLimit > 0 {
		page.TotalPages = (page.Total + req.PageLimit - 1) / req.PageLimit
		page.Page = req.Page
		start := (req.Page - 1) * req.PageLimit
		if start >= 0 && start < len(matched) {
			end := start + req.PageLimit
			if end > len(matched) {
				end = len(matched)
			}
			page.Data = matched[start:end]
		}
	}
	writeJSON(w, http.StatusOK, page)
}

func (b *Backend) serveRolePage(w http.ResponseWriter, body []byte) {
	var req remote.RolePageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	page := remote.RolePage{Data: []models.Role{}, Total: len(b.Roles), Page: req.Page, PageLimit: req.PageLimit}
	if req.PageLimit > 0 {
		page.TotalPages = (page.Total + req.PageLimit - 1) / req.PageLimit
		start := (req.Page - 1) * req.PageLimit
		if start >= 0 && start < len(b.Roles) {
			end := start + req.PageLimit
			if end > len(b.Roles) {
				end = len(b.Roles)
			}
			page.Data = b.Roles[start:end]
		}
	}
	writeJSON(w, http.StatusOK, page)
}

func (b *Backend) createRole(w http.ResponseWriter, body []byte) {
	var req models.CreateRoleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	b.nextID++
	role := models.Role{RoleID: int(b.nextID), Role: req.Role, CompanyID: req.CompanyID, IsActive: req.IsActive}
	b.Roles = append(b.Roles, role)
	writeJSON(w, http.StatusOK, role)
}

func (b *Backend) createTask(w http.ResponseWriter, body []byte) {
	var req models.CreateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	b.nextID++
	task := models.Task{
		TaskID:      b.nextID,
		Name:        req.Name,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		Status:      req.Status,
		CompanyID:   req.CompanyID,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   req.CreatedBy,
		CreatedOn:   models.NewTimestamp(time.Now()),
	}
	b.Tasks = append(b.Tasks, task)
	writeJSON(w, http.StatusOK, task)
}

func (b *Backend) updateTask(w http.ResponseWriter, id int64, body []byte) {
	var req models.UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	for i := range b.Tasks {
		t := &b.Tasks[i]
		if t.TaskID != id {
			continue
		}
		if req.Status != nil {
			t.Status = *req.Status
		}
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.AssignedTo != nil {
			assignee := *req.AssignedTo
			t.AssignedTo = &assignee
		}
		updatedBy := req.UpdatedBy
		t.UpdatedBy = &updatedBy
		writeJSON(w, http.StatusOK, *t)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
}

func (b *Backend) createLog(w http.ResponseWriter, body []byte) {
	var req models.CreateTimeLogRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	b.nextID++
	log := models.TimeLog{
		LogID:        b.nextID,
		EmpID:        req.EmpID,
		TaskID:       req.TaskID,
		Date:         req.Date,
		HoursSpent:   req.HoursSpent,
		MinutesSpent: req.MinutesSpent,
		Description:  req.Description,
		CompanyID:    req.CompanyID,
		CreatedBy:    req.CreatedBy,
		IsActive:     true,
	}
	b.Logs = append(b.Logs, log)
	writeJSON(w, http.StatusOK, log)
}

func (b *Backend) upload(w http.ResponseWriter, r *http.Request) {
	// the body was already drained for the request log
	name := "document.bin"
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "multipart body required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"filename": name, "url": "/uploads/" + name})
}

func tailID(path string) int64 {
	id, _ := strconv.ParseInt(path[strings.LastIndex(path, "/")+1:], 10, 64)
	return id
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
