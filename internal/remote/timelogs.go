package remote

import (
	"context"
	"net/http"

	"worknest-console/internal/models"
)

// AllTimeLogs calls GET /alllogtimes
func (c *Client) AllTimeLogs(ctx context.Context) ([]models.TimeLog, error) {
	var logs []models.TimeLog
	if err := c.doRequest(ctx, http.MethodGet, "/alllogtimes", "/alllogtimes", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// TimeLogsByTask calls GET /logtimes/by-task/{id}
func (c *Client) TimeLogsByTask(ctx context.Context, taskID int64) ([]models.TimeLog, error) {
	var logs []models.TimeLog
	if err := c.doRequest(ctx, http.MethodGet, "/logtimes/by-task/{id}", idPath("/logtimes/by-task", taskID), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CreateTimeLog calls POST /logtimes
func (c *Client) CreateTimeLog(ctx context.Context, req models.CreateTimeLogRequest) (*models.TimeLog, error) {
	var log models.TimeLog
	if err := c.doRequest(ctx, http.MethodPost, "/logtimes", "/logtimes", req, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// UpdateTimeLog calls PUT /logtimes/{id}
func (c *Client) UpdateTimeLog(ctx context.Context, id int64, req models.UpdateTimeLogRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPut, "/logtimes/{id}", idPath("/logtimes", id), req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteTimeLog calls DELETE /logtimes/{id}?deleted_by=
func (c *Client) DeleteTimeLog(ctx context.Context, id, deletedBy int64) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodDelete, "/logtimes/{id}", deletePath("/logtimes", id, deletedBy), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
