package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"worknest-console/internal/logger"
	"worknest-console/internal/middleware"
	"worknest-console/internal/navigation"
	"worknest-console/internal/notify"
	"worknest-console/internal/realtime"
	"worknest-console/internal/remote"
	"worknest-console/internal/screen"
	"worknest-console/internal/session"
	"worknest-console/internal/views"

	"github.com/gin-gonic/gin"
)

// Handler serves the console API.
type Handler struct {
	views   *views.Service
	store   *session.Store
	screens *screen.Registry
	nav     *navigation.Policy
	hub     *realtime.Hub
}

// New wires the handler dependencies.
func New(svc *views.Service, store *session.Store, screens *screen.Registry, nav *navigation.Policy, hub *realtime.Hub) *Handler {
	return &Handler{views: svc, store: store, screens: screens, nav: nav, hub: hub}
}

// Nav exposes the navigation policy.
func (h *Handler) Nav() *navigation.Policy {
	return h.nav
}

// sessionOrAbort returns the current session. SessionAuth guarantees one on
// protected routes, so a nil here is a routing mistake.
func sessionOrAbort(c *gin.Context) *session.Session {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session required"})
	}
	return sess
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return n
}

func queryInt64(c *gin.Context, key string) int64 {
	n, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func respondNotice(c *gin.Context, status int, notice notify.Notice, extra gin.H) {
	body := gin.H{"error": notice.Message, "notice": notice}
	if notice.Level == notify.LevelSuccess || notice.Level == notify.LevelInfo {
		body = gin.H{"message": notice.Message, "notice": notice}
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// notFound answers 404 and points the console at the entity's list screen.
func (h *Handler) notFound(c *gin.Context, sess *session.Session, entity, listTarget string) {
	decision := h.nav.Resolve(sess.Role, listTarget)
	respondNotice(c, http.StatusNotFound, notify.NotFound(entity), gin.H{"redirect": decision.Path})
}

// respondError maps a service error onto a status and notice. action and
// entity describe what failed, e.g. "update", "task".
func respondError(c *gin.Context, err error, action, entity string) {
	ctx := c.Request.Context()
	var validation *views.ValidationError
	var apiErr *remote.APIError
	switch {
	case errors.As(err, &validation):
		respondNotice(c, http.StatusBadRequest, validation.Notice, nil)
	case errors.Is(err, views.ErrNotFound):
		respondNotice(c, http.StatusNotFound, notify.NotFound(entity), nil)
	case errors.Is(err, views.ErrNotAssignable):
		respondNotice(c, http.StatusBadRequest, notify.NotAssignable(), nil)
	case errors.Is(err, views.ErrTimeLogRequired):
		respondNotice(c, http.StatusBadRequest, notify.TimeLogRequired(), nil)
	case errors.Is(err, context.Canceled):
		c.Status(499)
	case errors.As(err, &apiErr):
		logger.WarnLog(ctx, "%s %s: %v", action, entity, err)
		status := http.StatusBadGateway
		if apiErr.Status == http.StatusNotFound {
			status = http.StatusNotFound
		} else if apiErr.Status >= 400 && apiErr.Status < 500 {
			status = http.StatusBadRequest
		}
		respondNotice(c, status, notify.ActionFailed(action, entity, apiErr.Detail), nil)
	default:
		logger.ErrorLog(ctx, "%s %s: %v", action, entity, err)
		respondNotice(c, http.StatusBadGateway, notify.ActionFailed(action, entity, ""), nil)
	}
}

// serveScreen loads a screen under its session's sequence guard. A load
// that a newer one superseded answers 409; a failed load returns the last
// good value marked stale, when there is one.
func serveScreen[T any](h *Handler, c *gin.Context, view, what string, load func(ctx context.Context) (T, error)) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	scr := screen.For[T](h.screens, sess.ID, view)
	out := screen.Run(c.Request.Context(), scr, load)

	var validation *views.ValidationError
	switch {
	case out.Superseded:
		respondNotice(c, http.StatusConflict, notify.Superseded(view), nil)
	case out.Err == nil:
		c.JSON(http.StatusOK, out.Value)
	case errors.As(out.Err, &validation), errors.Is(out.Err, views.ErrNotFound):
		respondError(c, out.Err, "load", what)
	case out.Stale:
		logger.WarnLog(c.Request.Context(), "serving stale %s: %v", view, out.Err)
		respondNotice(c, http.StatusBadGateway, notify.LoadFailed(what), gin.H{"stale": true, "data": out.Value})
	default:
		logger.WarnLog(c.Request.Context(), "load %s: %v", view, out.Err)
		respondNotice(c, http.StatusBadGateway, notify.LoadFailed(what), nil)
	}
}

// confirmed reports whether a destructive request carries confirm=true,
// answering 409 with the confirmation prompt when it does not.
func confirmed(c *gin.Context, entity string) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	respondNotice(c, http.StatusConflict, notify.ConfirmDelete(entity), gin.H{"confirm": true})
	return false
}
