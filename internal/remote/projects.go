package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"worknest-console/internal/models"
)

// AllProjects calls GET /allprojects
func (c *Client) AllProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.doRequest(ctx, http.MethodGet, "/allprojects", "/allprojects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Project calls GET /projects/{id}
func (c *Client) Project(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	if err := c.doRequest(ctx, http.MethodGet, "/projects/{id}", idPath("/projects", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ProjectsByManager calls GET /projects/by-manager?emp_id=
func (c *Client) ProjectsByManager(ctx context.Context, managerID int64) ([]models.Project, error) {
	q := url.Values{}
	q.Set("emp_id", strconv.FormatInt(managerID, 10))
	var projects []models.Project
	if err := c.doRequest(ctx, http.MethodGet, "/projects/by-manager", "/projects/by-manager?"+q.Encode(), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject calls POST /projects
func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPost, "/projects", "/projects", req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateProject calls PUT /projects/{id}
func (c *Client) UpdateProject(ctx context.Context, id int64, req models.UpdateProjectRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPut, "/projects/{id}", idPath("/projects", id), req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteProject calls DELETE /projects/{id}?deleted_by=
func (c *Client) DeleteProject(ctx context.Context, id, deletedBy int64) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodDelete, "/projects/{id}", deletePath("/projects", id, deletedBy), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ProjectPageRequest is the body of POST /projects/paginated.
type ProjectPageRequest struct {
	Page           int    `json:"page"`
	PageLimit      int    `json:"PageLimit"`
	Name           string `json:"name,omitempty"`
	Status         string `json:"status,omitempty"`
	Priority       string `json:"priority,omitempty"`
	ProjectManager *int64 `json:"project_manager,omitempty"`
}

// ProjectPage is the answer of POST /projects/paginated.
type ProjectPage struct {
	Data       []models.Project `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageLimit  int              `json:"PageLimit"`
	TotalPages int              `json:"total_pages"`
}

// ProjectsPage calls POST /projects/paginated
func (c *Client) ProjectsPage(ctx context.Context, req ProjectPageRequest) (*ProjectPage, error) {
	var page ProjectPage
	if err := c.doRequest(ctx, http.MethodPost, "/projects/paginated", "/projects/paginated", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
