package remote

import (
	"context"
	"net/http"

	"worknest-console/internal/models"
)

// AllTasks calls GET /alltasks
func (c *Client) AllTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.doRequest(ctx, http.MethodGet, "/alltasks", "/alltasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByManager calls GET /tasks/by-manager/{id}
func (c *Client) TasksByManager(ctx context.Context, managerID int64) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.doRequest(ctx, http.MethodGet, "/tasks/by-manager/{id}", idPath("/tasks/by-manager", managerID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByAssignee calls GET /tasks/by-assigned/{id}
func (c *Client) TasksByAssignee(ctx context.Context, empID int64) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.doRequest(ctx, http.MethodGet, "/tasks/by-assigned/{id}", idPath("/tasks/by-assigned", empID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask calls POST /tasks
func (c *Client) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.doRequest(ctx, http.MethodPost, "/tasks", "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask calls PUT /tasks/{id}
func (c *Client) UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.doRequest(ctx, http.MethodPut, "/tasks/{id}", idPath("/tasks", id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask calls DELETE /tasks/{id}?deleted_by=
func (c *Client) DeleteTask(ctx context.Context, id, deletedBy int64) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodDelete, "/tasks/{id}", deletePath("/tasks", id, deletedBy), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// TaskPageRequest is the body of POST /tasks/paginated/filter. The field
// names are the collaborator's own mix of cases.
type TaskPageRequest struct {
	Page        int    `json:"page"`
	PageLimit   int    `json:"PageLimit"`
	ProjectName string `json:"ProjectName,omitempty"`
	AssignedTo  *int64 `json:"AssignedTo,omitempty"`
	Priority    string `json:"Priority,omitempty"`
	TaskName    string `json:"TaskName,omitempty"`
	ManagerID   *int64 `json:"ManagerId,omitempty"`
}

// TaskPage is the answer of POST /tasks/paginated/filter.
type TaskPage struct {
	Data       []models.Task `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageLimit  int           `json:"PageLimit"`
	TotalPages int           `json:"total_pages"`
}

// TasksPage calls POST /tasks/paginated/filter
func (c *Client) TasksPage(ctx context.Context, req TaskPageRequest) (*TaskPage, error) {
	var page TaskPage
	if err := c.doRequest(ctx, http.MethodPost, "/tasks/paginated/filter", "/tasks/paginated/filter", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
