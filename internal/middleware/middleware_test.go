package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"worknest-console/internal/models"
	"worknest-console/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type stubAuthorizer map[models.RoleCode]bool

func (s stubAuthorizer) Allow(role models.RoleCode, resource, action string) (bool, error) {
	return s[role], nil
}

func withSession(role models.RoleCode) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextSession, &session.Session{ID: "s1", EmpID: 1, CompanyID: 1, Role: role})
		c.Next()
	}
}

func TestRequire_ForbidsRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	az := stubAuthorizer{models.RoleAdmin: true}

	for role, want := range map[models.RoleCode]int{
		models.RoleAdmin:    http.StatusOK,
		models.RoleEmployee: http.StatusForbidden,
	} {
		r := gin.New()
		r.Use(withSession(role))
		r.GET("/employees", Require(az, "employees", "read"), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees", nil))
		require.Equal(t, want, w.Code, "role %d", role)
	}
}

func TestRequire_NoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/employees", Require(stubAuthorizer{}, "employees", "read"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter_RejectsBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(rate.Every(time.Hour), 2, time.Minute)
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another address has its own budget
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Second), 1, -time.Second)
	limiter.getLimiter("10.0.0.1")
	require.Equal(t, 1, limiter.Cleanup())
	require.Equal(t, 0, limiter.Cleanup())
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}
