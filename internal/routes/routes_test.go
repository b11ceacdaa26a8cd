package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"worknest-console/internal/auth"
	"worknest-console/internal/authz"
	"worknest-console/internal/config"
	"worknest-console/internal/handlers"
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

type testRouter struct {
	engine  *gin.Engine
	store   *session.Store
	backend *testutil.Backend
}

func setup(t *testing.T) *testRouter {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := testutil.NewBackend(t)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	nav, err := navigation.Default()
	require.NoError(t, err)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)

	cfg := config.Default()
	store := session.NewStore(db, time.Hour)
	hub := realtime.NewHub()
	svc := views.NewService(backend.Client(), cfg.PageLimits, hub)
	h := handlers.New(svc, store, screen.NewRegistry(time.Minute), nav, hub)

	engine := SetupRoutes(h, Deps{Sessions: store, Authorizer: enforcer, Config: cfg})
	return &testRouter{engine: engine, store: store, backend: backend}
}

// openSession writes a session straight into the store and signs a console token for it.
func (r *testRouter) openSession(t *testing.T, empID int64, role models.RoleCode) string {
	t.Helper()
	emp := models.Employee{EmpID: empID, Name: "Test", RoleID: int(role), Email: "test@example.com", CompanyID: 1}
	claims := &auth.BackendClaims{UserID: empID, Role: role, CompanyID: 1, Email: emp.Email}
	values, err := session.Compose("backend-token", claims, &emp)
	require.NoError(t, err)

	id, err := r.store.Create(context.Background(), emp.Email, values)
	require.NoError(t, err)
	token, err := auth.GenerateToken(id, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (r *testRouter) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setup(t)
	w := r.get("/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsExposed(t *testing.T) {
	r := setup(t)
	r.get("/health", "")

	w := r.get("/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "worknest_http_requests_total")
}

func TestPreflight(t *testing.T) {
	r := setup(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestProtectedRouteNeedsSession(t *testing.T) {
	r := setup(t)
	w := r.get("/api/tasks", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "/login", body["redirect"])
}

func TestRoleAccess(t *testing.T) {
	r := setup(t)
	employee := r.openSession(t, 3, models.RoleEmployee)
	admin := r.openSession(t, 1, models.RoleAdmin)

	require.Equal(t, http.StatusForbidden, r.get("/api/employees", employee).Code)
	require.Equal(t, http.StatusForbidden, r.get("/api/reports", employee).Code)
	require.Equal(t, http.StatusForbidden, r.get("/api/dashboard/admin", employee).Code)
	require.Equal(t, http.StatusOK, r.get("/api/tasks", employee).Code)

	require.Equal(t, http.StatusOK, r.get("/api/employees", admin).Code)
	require.Equal(t, http.StatusOK, r.get("/api/session", admin).Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	r := setup(t)
	body, err := json.Marshal(handlers.LoginRequest{Email: "ada@example.com", Password: "x"})
	require.NoError(t, err)

	var last int
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.9:1234"
		w := httptest.NewRecorder()
		r.engine.ServeHTTP(w, req)
		last = w.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestRoleManagementNeedsSuperAdmin(t *testing.T) {
	r := setup(t)
	admin := r.openSession(t, 1, models.RoleAdmin)
	super := r.openSession(t, 1, models.RoleSuperAdmin)

	send := func(method, path, token string) int {
		req := httptest.NewRequest(method, path, bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.engine.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusForbidden, send(http.MethodPost, "/api/roles", admin))
	require.Equal(t, http.StatusForbidden, send(http.MethodDelete, "/api/roles/30?confirm=true", admin))
	require.Equal(t, http.StatusOK, r.get("/api/roles/paginated", admin).Code)

	// the empty body passes authorization and fails validation
	require.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/api/roles", super))
	require.Empty(t, r.backend.Requests(http.MethodPost, "/roles"))
}
