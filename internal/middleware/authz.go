package middleware

import (
	"net/http"

	"worknest-console/internal/logger"
	"worknest-console/internal/models"
	"worknest-console/internal/notify"

	"github.com/gin-gonic/gin"
)

// Authorizer decides whether a role may perform action on resource.
type Authorizer interface {
	Allow(role models.RoleCode, resource, action string) (bool, error)
}

// Require lets the request through only when the session's role holds the
// permission. It must run after SessionAuth.
func Require(az Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session required"})
			return
		}

		ok, err := az.Allow(sess.Role, resource, action)
		if err != nil {
			logger.ErrorLog(c.Request.Context(), "authorize %s %s: %v", resource, action, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
			return
		}
		if !ok {
			notice := notify.Forbidden()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": notice.Message, "notice": notice})
			return
		}

		c.Next()
	}
}
