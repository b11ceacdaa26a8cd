package handlers

import (
	"net/http"

	"worknest-console/internal/models"
	"worknest-console/internal/notify"
	"worknest-console/internal/views"

	"github.com/gin-gonic/gin"
)

// CreateProject handles POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var req views.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Project name and manager are required."), nil)
		return
	}
	if _, err := h.views.CreateProject(c.Request.Context(), sess, req); err != nil {
		respondError(c, err, "create", "project")
		return
	}
	respondNotice(c, http.StatusCreated, notify.Done("project", "created"), nil)
}

// UpdateProject handles PUT /api/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req views.ProjectPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid project payload."), nil)
		return
	}
	if _, err := h.views.UpdateProject(c.Request.Context(), sess, id, req); err != nil {
		respondError(c, err, "update", "project")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("project", "updated"), nil)
}

// DeleteProject handles DELETE /api/projects/:id?confirm=true
func (h *Handler) DeleteProject(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok || !confirmed(c, "project") {
		return
	}
	res, err := h.views.DeleteProject(c.Request.Context(), sess, id)
	if err != nil {
		respondError(c, err, "delete", "project")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("project", "deleted"), gin.H{"detail": res.Message()})
}

// CreateAssignment handles POST /api/projects/:id/members
func (h *Handler) CreateAssignment(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Employee and project role are required."), nil)
		return
	}
	if _, err := h.views.CreateAssignment(c.Request.Context(), sess, projectID, req); err != nil {
		respondError(c, err, "assign", "employee")
		return
	}
	respondNotice(c, http.StatusCreated, notify.Done("employee", "assigned"), nil)
}

// UpdateAssignment handles PUT /api/assignments/:id
func (h *Handler) UpdateAssignment(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid assignment payload."), nil)
		return
	}
	if _, err := h.views.UpdateAssignment(c.Request.Context(), sess, id, req); err != nil {
		respondError(c, err, "update", "assignment")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("assignment", "updated"), nil)
}

// DeleteAssignment handles DELETE /api/assignments/:id?confirm=true
func (h *Handler) DeleteAssignment(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok || !confirmed(c, "assignment") {
		return
	}
	res, err := h.views.DeleteAssignment(c.Request.Context(), sess, id)
	if err != nil {
		respondError(c, err, "remove", "assignment")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("assignment", "removed"), gin.H{"detail": res.Message()})
}
