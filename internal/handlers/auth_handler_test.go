package handlers

import (
	"net/http"
	"testing"

	"worknest-console/internal/models"
	"worknest-console/internal/notify"
	"worknest-console/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestLoginOpensSession(t *testing.T) {
	f := newFixture(t)
	f.backend.LoginToken = testutil.BackendToken("ada@example.com", 41, models.RoleAdmin, 1)

	w := f.do(http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	require.Equal(t, "/admin", body["home"])
	require.Equal(t, "Login successful", body["message"])
	sess := body["session"].(map[string]interface{})
	require.EqualValues(t, 1, sess["empId"])
	require.EqualValues(t, 1, sess["companyId"])
	require.EqualValues(t, 8, sess["roleId"])
	require.Equal(t, "Ada Admin", sess["name"])
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, notify.CodeLoginFailed, noticeCode(t, w))
}

func TestLoginMissingFields(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, notify.CodeInvalid, noticeCode(t, w))
}

func TestLoginUnknownRoleGetsNoSession(t *testing.T) {
	f := newFixture(t)
	f.backend.LoginToken = testutil.BackendToken("gus@example.com", 45, models.RoleCode(99), 1)

	w := f.do(http.MethodPost, "/api/login", "", map[string]string{"email": "gus@example.com", "password": "secret"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, notify.CodeUnauthorizedRole, noticeCode(t, w))
	require.NotContains(t, decode(t, w), "token")
}

func TestLoginWithoutEmployeeRecord(t *testing.T) {
	f := newFixture(t)
	f.backend.LoginToken = testutil.BackendToken("ghost@example.com", 46, models.RoleAdmin, 1)

	w := f.do(http.MethodPost, "/api/login", "", map[string]string{"email": "ghost@example.com", "password": "secret"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, notify.CodeSessionMissing, noticeCode(t, w))
}

func TestLogoutEndsSession(t *testing.T) {
	f := newFixture(t)
	token := f.login("ada@example.com", 41, models.RoleAdmin)

	w := f.do(http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "/admin", decode(t, w)["home"])

	w = f.do(http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "/login", decode(t, w)["redirect"])

	w = f.do(http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNavigateResolvesForRole(t *testing.T) {
	f := newFixture(t)
	admin := f.login("ada@example.com", 41, models.RoleAdmin)

	w := f.do(http.MethodGet, "/api/nav/task-view?id=5", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, "/admin/viewtask/5", body["path"])
	require.Equal(t, true, body["allowed"])

	employee := f.login("erin@example.com", 43, models.RoleEmployee)
	w = f.do(http.MethodGet, "/api/nav/report", employee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	require.Equal(t, "/login", body["path"])
	require.Equal(t, false, body["allowed"])
}

func TestTargetsListsRoleScreens(t *testing.T) {
	f := newFixture(t)
	token := f.login("paul@example.com", 42, models.RoleProjectManager)

	w := f.do(http.MethodGet, "/api/nav", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, "/project-manager", body["home"])
	require.Contains(t, body["targets"], "task-list")
	require.NotContains(t, body["targets"], "employee-list")
}
