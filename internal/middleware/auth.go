package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"worknest-console/internal/auth"
	"worknest-console/internal/logger"
	"worknest-console/internal/notify"
	"worknest-console/internal/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by SessionAuth.
const (
	ContextSession   = "session"
	ContextSessionID = "session_id"
)

// SessionLoader reads a live session by id.
type SessionLoader interface {
	Load(ctx context.Context, id string) (*session.Session, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	// Fallback for WebSocket/browser where custom headers cannot be set
	return c.Query("token")
}

// Unauthorized aborts with 401 and sends the console back to the login screen.
func Unauthorized(c *gin.Context, notice notify.Notice, loginPath string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    notice.Message,
		"notice":   notice,
		"redirect": loginPath,
	})
}

// SessionAuth validates the console token and loads the session it names.
// A missing, expired or incomplete session redirects to loginPath.
func SessionAuth(store SessionLoader, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			Unauthorized(c, notify.SessionMissing(""), loginPath)
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			Unauthorized(c, notify.SessionMissing(""), loginPath)
			return
		}

		sess, err := store.Load(c.Request.Context(), claims.SessionID)
		if err != nil {
			var missing *session.MissingKeyError
			switch {
			case errors.As(err, &missing):
				logger.WarnLog(c.Request.Context(), "session %s incomplete: %v", claims.SessionID, err)
				Unauthorized(c, notify.SessionMissing(missing.Key), loginPath)
			case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
				Unauthorized(c, notify.SessionMissing(""), loginPath)
			default:
				logger.ErrorLog(c.Request.Context(), "load session: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			}
			return
		}

		c.Set(ContextSessionID, sess.ID)
		c.Set(ContextSession, sess)
		ctx := logger.WithLogger(c.Request.Context(), map[string]interface{}{
			"session_id": sess.ID,
			"emp_id":     sess.EmpID,
			"company_id": sess.CompanyID,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentSession returns the session stored by SessionAuth, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
