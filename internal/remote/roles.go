package remote

import (
	"context"
	"net/http"

	"worknest-console/internal/models"
)

// RolePageRequest is the body of POST /roles/paginated.
type RolePageRequest struct {
	Page      int `json:"page"`
	PageLimit int `json:"PageLimit"`
}

// RolePage is the answer of POST /roles/paginated. It spans every company.
type RolePage struct {
	Data       []models.Role `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageLimit  int           `json:"PageLimit"`
	TotalPages int           `json:"total_pages"`
}

// Roles calls GET /allroles
func (c *Client) Roles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := c.doRequest(ctx, http.MethodGet, "/allroles", "/allroles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// RolesPage calls POST /roles/paginated
func (c *Client) RolesPage(ctx context.Context, req RolePageRequest) (*RolePage, error) {
	var page RolePage
	if err := c.doRequest(ctx, http.MethodPost, "/roles/paginated", "/roles/paginated", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateRole calls POST /roles
func (c *Client) CreateRole(ctx context.Context, req models.CreateRoleRequest) (*models.Role, error) {
	var role models.Role
	if err := c.doRequest(ctx, http.MethodPost, "/roles", "/roles", req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole calls PUT /roles/{id}
func (c *Client) UpdateRole(ctx context.Context, id int, req models.UpdateRoleRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPut, "/roles/{id}", idPath("/roles", int64(id)), req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteRole calls DELETE /roles/{id}?deleted_by=
func (c *Client) DeleteRole(ctx context.Context, id int, deletedBy int64) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodDelete, "/roles/{id}", deletePath("/roles", int64(id), deletedBy), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
