package handlers

import (
	"net/http"

	"worknest-console/internal/models"
	"worknest-console/internal/notify"
	"worknest-console/internal/views"

	"github.com/gin-gonic/gin"
)

/*
*
CreateTask handles POST /api/tasks
The company and creator come from the session, never from the body.
*/
func (h *Handler) CreateTask(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid task payload."), nil)
		return
	}
	task, err := h.views.CreateTask(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "create", "task")
		return
	}
	respondNotice(c, http.StatusCreated, notify.Done("task", "created"), gin.H{"task": task})
}

// UpdateTask handles PUT /api/tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid task payload."), nil)
		return
	}
	task, err := h.views.UpdateTask(c.Request.Context(), sess, id, req)
	if err != nil {
		respondError(c, err, "update", "task")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("task", "updated"), gin.H{"task": task})
}

/*
*
UpdateTaskStatus handles PATCH /api/tasks/:id/status
Moving a task forward out of Pending, or to a finished state, needs a time log
in the same request.
*/
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req views.StatusChange
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Status is required."), nil)
		return
	}
	result, err := h.views.ChangeTaskStatus(c.Request.Context(), sess, id, req)
	if err != nil {
		respondError(c, err, "update", "task status")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("task status", "updated"), gin.H{"task": result.Task, "log": result.Log})
}

// DeleteTask handles DELETE /api/tasks/:id?confirm=true
func (h *Handler) DeleteTask(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok || !confirmed(c, "task") {
		return
	}
	res, err := h.views.DeleteTask(c.Request.Context(), sess, id)
	if err != nil {
		respondError(c, err, "delete", "task")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("task", "deleted"), gin.H{"detail": res.Message()})
}
