package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"worknest-console/internal/auth"
	"worknest-console/internal/models"
	"worknest-console/internal/session"
	"worknest-console/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return session.NewStore(db, 0)
}

func protectedRouter(store *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionAuth(store, "/login"))
	r.GET("/protected", func(c *gin.Context) {
		sess := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"empId": sess.EmpID, "companyId": sess.CompanyID})
	})
	return r
}

func TestSessionAuth_Success(t *testing.T) {
	store := newStore(t)
	id, err := store.Create(context.Background(), "ada@example.com", session.Values{
		session.KeyEmpID: "1", session.KeyCompanyID: "4", session.KeyRoleID: "8",
	})
	require.NoError(t, err)
	token, err := auth.GenerateToken(id, models.RoleAdmin, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int64(1), body["empId"])
	require.Equal(t, int64(4), body["companyId"])
}

func TestSessionAuth_QueryTokenFallback(t *testing.T) {
	store := newStore(t)
	id, err := store.Create(context.Background(), "ada@example.com", session.Values{
		session.KeyEmpID: "1", session.KeyCompanyID: "4", session.KeyRoleID: "8",
	})
	require.NoError(t, err)
	token, err := auth.GenerateToken(id, models.RoleAdmin, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()
	protectedRouter(store).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	protectedRouter(newStore(t)).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "/login", body["redirect"])
}

func TestSessionAuth_MissingKeyRedirects(t *testing.T) {
	store := newStore(t)
	id, err := store.Create(context.Background(), "ada@example.com", session.Values{
		session.KeyEmpID: "1", session.KeyRoleID: "8",
	})
	require.NoError(t, err)
	token, err := auth.GenerateToken(id, models.RoleAdmin, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "companyId")
	require.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestSessionAuth_DeletedSession(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	id, err := store.Create(ctx, "ada@example.com", session.Values{
		session.KeyEmpID: "1", session.KeyCompanyID: "4", session.KeyRoleID: "8",
	})
	require.NoError(t, err)
	token, err := auth.GenerateToken(id, models.RoleAdmin, 0)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, id))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(store).ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
