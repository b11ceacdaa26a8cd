package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"worknest-console/internal/models"
)

// ProjectEmployees calls GET /project-employees?status=
func (c *Client) ProjectEmployees(ctx context.Context, status models.AssignmentStatus) ([]models.ProjectEmployee, error) {
	if status == "" {
		status = models.AssignmentsActive
	}
	var assignments []models.ProjectEmployee
	path := "/project-employees?status=" + url.QueryEscape(string(status))
	if err := c.doRequest(ctx, http.MethodGet, "/project-employees", path, nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ProjectEmployeesFor calls GET /project-employees/by-company-project
func (c *Client) ProjectEmployeesFor(ctx context.Context, companyID, projectID int64, status models.AssignmentStatus) ([]models.ProjectEmployee, error) {
	if status == "" {
		status = models.AssignmentsActive
	}
	q := url.Values{}
	q.Set("company_id", strconv.FormatInt(companyID, 10))
	q.Set("project_id", strconv.FormatInt(projectID, 10))
	q.Set("status", string(status))
	var assignments []models.ProjectEmployee
	path := "/project-employees/by-company-project?" + q.Encode()
	if err := c.doRequest(ctx, http.MethodGet, "/project-employees/by-company-project", path, nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateAssignment calls POST /project-employees
func (c *Client) CreateAssignment(ctx context.Context, req models.CreateAssignmentRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPost, "/project-employees", "/project-employees", req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateAssignment calls PUT /project-employees/{id}
func (c *Client) UpdateAssignment(ctx context.Context, id int64, req models.UpdateAssignmentRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPut, "/project-employees/{id}", idPath("/project-employees", id), req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteAssignment calls DELETE /project-employees/{id}?deleted_by=
func (c *Client) DeleteAssignment(ctx context.Context, id, deletedBy int64) (Result, error) {
	var res Result
	path := deletePath("/project-employees", id, deletedBy)
	if err := c.doRequest(ctx, http.MethodDelete, "/project-employees/{id}", path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ProjectRoles calls GET /projectroles
func (c *Client) ProjectRoles(ctx context.Context) ([]models.ProjectRole, error) {
	var roles []models.ProjectRole
	if err := c.doRequest(ctx, http.MethodGet, "/projectroles", "/projectroles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
