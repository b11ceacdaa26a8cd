package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"worknest-console/internal/charts"
	"worknest-console/internal/listing"
	"worknest-console/internal/logger"
	"worknest-console/internal/models"
	"worknest-console/internal/navigation"
	"worknest-console/internal/notify"
	"worknest-console/internal/report"
	"worknest-console/internal/views"

	"github.com/gin-gonic/gin"
)

// Screen names, one sequence guard each per session.
const (
	viewTasks             = "tasks"
	viewProjects          = "projects"
	viewEmployees         = "employees"
	viewReport            = "report"
	viewRoles             = "roles"
	viewDashboardAdmin    = "dashboard-admin"
	viewDashboardManager  = "dashboard-manager"
	viewDashboardEmployee = "dashboard-employee"
)

/*
*
ListTasks handles GET /api/tasks
Query params: page, projectName, assignedTo, priority, taskName, managerId.
Employees and managers are always pinned to their own work.
*/
func (h *Handler) ListTasks(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var f listing.TaskFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid task filter."), nil)
		return
	}
	page := queryInt(c, "page", 1)
	serveScreen(h, c, viewTasks, "tasks", func(ctx context.Context) (listing.Page[listing.TaskRow], error) {
		return h.views.TaskList(ctx, sess, f, page)
	})
}

// ListProjects handles GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var f listing.ProjectFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid project filter."), nil)
		return
	}
	page := queryInt(c, "page", 1)
	serveScreen(h, c, viewProjects, "projects", func(ctx context.Context) (listing.Page[listing.ProjectRow], error) {
		return h.views.ProjectList(ctx, sess, f, page)
	})
}

// ListEmployees handles GET /api/employees
func (h *Handler) ListEmployees(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	var f listing.EmployeeFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid employee filter."), nil)
		return
	}
	page := queryInt(c, "page", 1)
	serveScreen(h, c, viewEmployees, "employees", func(ctx context.Context) (listing.Page[listing.EmployeeRow], error) {
		return h.views.EmployeeList(ctx, sess, f, page)
	})
}

// ListRoles handles GET /api/roles
func (h *Handler) ListRoles(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	roles, err := h.views.Roles(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "load", "roles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// reportFilter reads empId, taskName, from and to. Dates are YYYY-MM-DD.
func reportFilter(c *gin.Context) (listing.TimeLogFilter, bool) {
	f := listing.TimeLogFilter{EmpID: queryInt64(c, "empId"), TaskName: c.Query("taskName")}
	for key, dst := range map[string]*models.Date{"from": &f.From, "to": &f.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, ok := models.ParseDate(raw)
		if !ok {
			respondNotice(c, http.StatusBadRequest, notify.Invalid("Invalid "+key+" date."), nil)
			return f, false
		}
		*dst = d
	}
	return f, true
}

// Report handles GET /api/reports
func (h *Handler) Report(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	page := queryInt(c, "page", 1)
	serveScreen(h, c, viewReport, "report", func(ctx context.Context) (listing.Page[listing.TimeLogRow], error) {
		return h.views.Report(ctx, sess, f, page)
	})
}

// ExportReport streams the filtered report as an xlsx workbook.
// GET /api/reports/export
func (h *Handler) ExportReport(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	rows, err := h.views.ReportRows(c.Request.Context(), sess, f)
	if err != nil {
		respondError(c, err, "export", "report")
		return
	}
	if len(rows) == 0 {
		respondNotice(c, http.StatusNotFound, notify.NoLogs(), nil)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, rows); err != nil {
		logger.ErrorLog(c.Request.Context(), "build report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

/*
*
TaskDetail handles GET /api/tasks/:id
A task outside the caller's reach is reported as missing.
*/
func (h *Handler) TaskDetail(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.views.TaskDetail(c.Request.Context(), sess, id)
	if errors.Is(err, views.ErrNotFound) {
		h.notFound(c, sess, "task", navigation.TaskList)
		return
	}
	if err != nil {
		respondError(c, err, "load", "task")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ProjectDetail handles GET /api/projects/:id
func (h *Handler) ProjectDetail(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.views.ProjectDetail(c.Request.Context(), sess, id)
	if errors.Is(err, views.ErrNotFound) {
		h.notFound(c, sess, "project", navigation.ProjectList)
		return
	}
	if err != nil {
		respondError(c, err, "load", "project")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Assignable handles GET /api/projects/:id/assignable
func (h *Handler) Assignable(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employees, err := h.views.Assignable(c.Request.Context(), sess, id)
	if err != nil {
		respondError(c, err, "load", "employees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// AdminDashboard handles GET /api/dashboard/admin
func (h *Handler) AdminDashboard(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	serveScreen(h, c, viewDashboardAdmin, "dashboard", func(ctx context.Context) (charts.AdminSummary, error) {
		return h.views.AdminDashboard(ctx, sess)
	})
}

// ManagerDashboard handles GET /api/dashboard/manager?projectId=
func (h *Handler) ManagerDashboard(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	projectID := queryInt64(c, "projectId")
	serveScreen(h, c, viewDashboardManager, "dashboard", func(ctx context.Context) (charts.ManagerSummary, error) {
		return h.views.ManagerDashboard(ctx, sess, projectID)
	})
}

// EmployeeDashboard handles GET /api/dashboard/employee
func (h *Handler) EmployeeDashboard(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	serveScreen(h, c, viewDashboardEmployee, "dashboard", func(ctx context.Context) (charts.EmployeeSummary, error) {
		return h.views.EmployeeDashboard(ctx, sess)
	})
}
