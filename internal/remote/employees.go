package remote

import (
	"context"
	"net/http"

	"worknest-console/internal/models"
)

// EmployeePageRequest is the body of POST /employees/paginated.
type EmployeePageRequest struct {
	Page      int    `json:"page"`
	PageLimit int    `json:"page_limit"`
	Search    string `json:"search,omitempty"`
	CompanyID int64  `json:"company_id"`
	RoleID    *int   `json:"role_id,omitempty"`
}

// EmployeePage is the answer of POST /employees/paginated. Page is 0 when total is 0.
type EmployeePage struct {
	Data       []models.Employee `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageLimit  int               `json:"page_limit"`
	TotalPages int               `json:"total_pages"`
}

// AllEmployees calls GET /allemployees
func (c *Client) AllEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.doRequest(ctx, http.MethodGet, "/allemployees", "/allemployees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// EmployeesPage calls POST /employees/paginated
func (c *Client) EmployeesPage(ctx context.Context, req EmployeePageRequest) (*EmployeePage, error) {
	var page EmployeePage
	if err := c.doRequest(ctx, http.MethodPost, "/employees/paginated", "/employees/paginated", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateEmployee calls POST /employees
func (c *Client) CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPost, "/employees", "/employees", req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateEmployee calls PUT /employees/{id}
func (c *Client) UpdateEmployee(ctx context.Context, id int64, req models.UpdateEmployeeRequest) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodPut, "/employees/{id}", idPath("/employees", id), req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteEmployee calls DELETE /employees/{id}?deleted_by=
func (c *Client) DeleteEmployee(ctx context.Context, id, deletedBy int64) (Result, error) {
	var res Result
	if err := c.doRequest(ctx, http.MethodDelete, "/employees/{id}", deletePath("/employees", id, deletedBy), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
