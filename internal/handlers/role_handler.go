package handlers

import (
	"context"
	"net/http"

	"worknest-console/internal/listing"
	"worknest-console/internal/models"
	"worknest-console/internal/notify"

	"github.com/gin-gonic/gin"
)

// ListRolePage handles GET /api/roles/paginated?page=
func (h *Handler) ListRolePage(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	page := queryInt(c, "page", 1)
	serveScreen(h, c, viewRoles, "roles", func(ctx context.Context) (listing.Page[models.Role], error) {
		return h.views.RoleList(ctx, sess, page)
	})
}

// CreateRole handles POST /api/roles
func (h *Handler) CreateRole(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var req models.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Role name is required."), nil)
		return
	}
	role, err := h.views.CreateRole(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "create", "role")
		return
	}
	respondNotice(c, http.StatusCreated, notify.Done("role", "created"), gin.H{"role": role})
}

// UpdateRole handles PUT /api/roles/:id
func (h *Handler) UpdateRole(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid role payload."), nil)
		return
	}
	if _, err := h.views.UpdateRole(c.Request.Context(), sess, int(id), req); err != nil {
		respondError(c, err, "update", "role")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("role", "updated"), nil)
}

// DeleteRole handles DELETE /api/roles/:id?confirm=true
func (h *Handler) DeleteRole(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok || !confirmed(c, "role") {
		return
	}
	res, err := h.views.DeleteRole(c.Request.Context(), sess, int(id))
	if err != nil {
		respondError(c, err, "delete", "role")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("role", "deleted"), gin.H{"detail": res.Message()})
}
