package handlers

import (
	"net/http"

	"worknest-console/internal/models"
	"worknest-console/internal/notify"

	"github.com/gin-gonic/gin"
)

// CreateEmployee handles POST /api/employees
func (h *Handler) CreateEmployee(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Name, role and a valid email are required."), nil)
		return
	}
	if _, err := h.views.CreateEmployee(c.Request.Context(), sess, req); err != nil {
		respondError(c, err, "create", "employee")
		return
	}
	respondNotice(c, http.StatusCreated, notify.Done("employee", "created"), nil)
}

// UpdateEmployee handles PUT /api/employees/:id
func (h *Handler) UpdateEmployee(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid employee payload."), nil)
		return
	}
	if _, err := h.views.UpdateEmployee(c.Request.Context(), sess, id, req); err != nil {
		respondError(c, err, "update", "employee")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("employee", "updated"), nil)
}

// DeleteEmployee handles DELETE /api/employees/:id?confirm=true
func (h *Handler) DeleteEmployee(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok || !confirmed(c, "employee") {
		return
	}
	res, err := h.views.DeleteEmployee(c.Request.Context(), sess, id)
	if err != nil {
		respondError(c, err, "delete", "employee")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("employee", "deleted"), gin.H{"detail": res.Message()})
}

// UpdateProfile handles PUT /api/profile. The role cannot be changed here.
// The session's display keys are refreshed afterwards.
func (h *Handler) UpdateProfile(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var req models.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid profile payload."), nil)
		return
	}
	ctx := c.Request.Context()
	if _, err := h.views.UpdateProfile(ctx, sess, req); err != nil {
		respondError(c, err, "update", "profile")
		return
	}
	values, err := h.views.RefreshProfile(ctx, sess)
	if err == nil {
		err = h.store.Put(ctx, sess.ID, values)
	}
	if err != nil {
		// the collaborator has the change; the session catches up on the next refresh
		respondNotice(c, http.StatusOK, notify.Done("profile", "updated"), gin.H{"refreshed": false})
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("profile", "updated"), gin.H{"refreshed": true})
}
