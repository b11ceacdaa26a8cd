package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"worknest-console/internal/auth"
	"worknest-console/internal/logger"
	"worknest-console/internal/notify"
	"worknest-console/internal/remote"
	"worknest-console/internal/session"

	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string           `json:"token"`
	Session *session.Session `json:"session"`
	Home    string           `json:"home"`
	Message string           `json:"message"`
}

// Login signs in against the collaborator and opens a console session.
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Email and password are required."), nil)
		return
	}
	ctx := c.Request.Context()

	result, err := h.views.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		var apiErr *remote.APIError
		var missing *session.MissingKeyError
		switch {
		case errors.As(err, &apiErr) && apiErr.Status < 500:
			respondNotice(c, http.StatusUnauthorized, notify.LoginFailed(apiErr.Detail), nil)
		case errors.As(err, &missing):
			logger.WarnLog(ctx, "login for %s incomplete: %v", req.Email, err)
			respondNotice(c, http.StatusUnauthorized, notify.SessionMissing(missing.Key), nil)
		default:
			logger.ErrorLog(ctx, "login: %v", err)
			respondNotice(c, http.StatusBadGateway, notify.LoginFailed(""), nil)
		}
		return
	}

	// roles without a console never get a session
	home, err := h.nav.HomePath(result.Role)
	if err != nil {
		logger.WarnLog(ctx, "login refused for role %d", result.Role)
		respondNotice(c, http.StatusForbidden, notify.UnauthorizedRole(), nil)
		return
	}

	id, err := h.store.Create(ctx, result.Email, result.Values)
	if err != nil {
		logger.ErrorLog(ctx, "create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	sess, err := session.Load(id, result.Values)
	if err != nil {
		respondNotice(c, http.StatusUnauthorized, notify.SessionMissing(""), nil)
		return
	}

	token, err := auth.GenerateToken(id, result.Role, h.store.TTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.InfoLog(ctx, "session %s opened for emp %d", id, sess.EmpID)
	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Session: sess,
		Home:    home,
		Message: "Login successful",
	})
}

// Logout ends the session and drops its screens.
// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	if err := h.store.Delete(c.Request.Context(), sess.ID); err != nil {
		logger.ErrorLog(c.Request.Context(), "delete session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	h.screens.Forget(sess.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": h.nav.LoginPath()})
}

// Me returns the current session.
// GET /api/session
func (h *Handler) Me(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	home, _ := h.nav.HomePath(sess.Role)
	c.JSON(http.StatusOK, gin.H{"session": sess, "home": home})
}

// RefreshProfile rereads the employee record into the session.
// POST /api/session/refresh
func (h *Handler) RefreshProfile(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	ctx := c.Request.Context()
	values, err := h.views.RefreshProfile(ctx, sess)
	if err != nil {
		respondError(c, err, "load", "profile")
		return
	}
	if err := h.store.Put(ctx, sess.ID, values); err != nil {
		logger.ErrorLog(ctx, "update session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session"})
		return
	}
	updated, err := h.store.Load(ctx, sess.ID)
	if err != nil {
		respondError(c, err, "load", "session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": updated})
}

// Navigate resolves a logical target for the session's role.
// GET /api/nav/:target?id=
func (h *Handler) Navigate(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var ids []int64
	for _, raw := range c.QueryArray("id") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			id = 0
		}
		ids = append(ids, id)
	}
	c.JSON(http.StatusOK, h.nav.Resolve(sess.Role, c.Param("target"), ids...))
}

// Targets lists the screens the session's role can open.
// GET /api/nav
func (h *Handler) Targets(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	home, _ := h.nav.HomePath(sess.Role)
	c.JSON(http.StatusOK, gin.H{"home": home, "targets": h.nav.Targets(sess.Role)})
}
