package handlers

import (
	"net/http"
	"path/filepath"

	"worknest-console/internal/logger"
	"worknest-console/internal/models"
	"worknest-console/internal/notify"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds a forwarded document.
const maxUploadBytes = 10 << 20

// CreateTimeLog handles POST /api/timelogs
func (h *Handler) CreateTimeLog(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var req models.CreateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Please fill in all required log time details."), nil)
		return
	}
	log, err := h.views.CreateTimeLog(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "log", "time")
		return
	}
	respondNotice(c, http.StatusCreated, notify.Done("time log", "added"), gin.H{"log": log})
}

// UpdateTimeLog handles PUT /api/timelogs/:id
func (h *Handler) UpdateTimeLog(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid time log payload."), nil)
		return
	}
	if _, err := h.views.UpdateTimeLog(c.Request.Context(), sess, id, req); err != nil {
		respondError(c, err, "update", "time log")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("time log", "updated"), nil)
}

// DeleteTimeLog handles DELETE /api/timelogs/:id?confirm=true
func (h *Handler) DeleteTimeLog(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok || !confirmed(c, "time log") {
		return
	}
	res, err := h.views.DeleteTimeLog(c.Request.Context(), sess, id)
	if err != nil {
		respondError(c, err, "delete", "time log")
		return
	}
	respondNotice(c, http.StatusOK, notify.Done("time log", "deleted"), gin.H{"detail": res.Message()})
}

// Upload handles POST /api/upload with the document in the "file" field.
func (h *Handler) Upload(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Please choose a file to upload."), nil)
		return
	}
	file, err := header.Open()
	if err != nil {
		respondNotice(c, http.StatusBadRequest, notify.UploadFailed(), nil)
		return
	}
	defer file.Close()

	attachment, err := h.views.Upload(c.Request.Context(), sess, filepath.Base(header.Filename), file)
	if err != nil {
		logger.WarnLog(c.Request.Context(), "upload %s: %v", header.Filename, err)
		respondNotice(c, http.StatusBadGateway, notify.UploadFailed(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachment": attachment})
}
