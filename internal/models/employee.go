package models

// Employee is a company member. The collaborator serves employees in snake_case.
type Employee struct {
	EmpID         int64      `json:"emp_id"`
	Name          string     `json:"name"`
	RoleID        int        `json:"role_id"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	Email         string     `json:"email"`
	Description   string     `json:"description"`
	CompanyID     int64      `json:"company_id"`
	CreatedBy     *int64     `json:"created_by,omitempty"`
	UpdatedBy     *int64     `json:"updated_by,omitempty"`
	IsActive      bool       `json:"is_active"`
	DeletedOn     *Timestamp `json:"deleted_on,omitempty"`
	DeletedBy     *int64     `json:"deleted_by,omitempty"`
	EmployeeImage string     `json:"EmployeeImage,omitempty"`
	ImageURL      string     `json:"ImageUrl,omitempty"`
	ImagePath     string     `json:"ImagePath,omitempty"`
}

// CreateEmployeeRequest is the body of POST /employees.
type CreateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	RoleID        int    `json:"role_id" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Email         string `json:"email" binding:"required,email"`
	Description   string `json:"description"`
	EmployeeImage string `json:"EmployeeImage,omitempty"`
	ImageURL      string `json:"ImageUrl,omitempty"`
	ImagePath     string `json:"ImagePath,omitempty"`
	CreatedBy     int64  `json:"created_by"`
	CompanyID     int64  `json:"company_id"`
}

// UpdateEmployeeRequest is the body of PUT /employees/{id}. Only changed fields are set.
type UpdateEmployeeRequest struct {
	Name          *string `json:"name,omitempty"`
	RoleID        *int    `json:"role_id,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Email         *string `json:"email,omitempty"`
	Description   *string `json:"description,omitempty"`
	EmployeeImage *string `json:"EmployeeImage,omitempty"`
	ImageURL      *string `json:"ImageUrl,omitempty"`
	ImagePath     *string `json:"ImagePath,omitempty"`
	UpdatedBy     int64   `json:"updated_by"`
}
