package models

// ProjectEmployee assigns an employee to a project under a project role.
// A nil DeletedOn means the assignment is still active.
type ProjectEmployee struct {
	ProjectEmployeeID int64      `json:"ProjectEmployeeId"`
	EmpID             int64      `json:"EmpId"`
	ProjectID         int64      `json:"ProjectId"`
	ProjectRoleID     int64      `json:"ProjectRoleId"`
	CompanyID         int64      `json:"CompanyId"`
	CreatedOn         Timestamp  `json:"CreatedOn"`
	CreatedBy         int64      `json:"CreatedBy"`
	IsActive          bool       `json:"IsActive"`
	DeletedOn         *Timestamp `json:"DeletedOn,omitempty"`
	DeletedBy         *int64     `json:"DeletedBy,omitempty"`
	UpdatedOn         *Timestamp `json:"UpdatedOn,omitempty"`
	UpdatedBy         *int64     `json:"UpdatedBy,omitempty"`
}

// Active reports whether the assignment has not been ended.
func (pe ProjectEmployee) Active() bool {
	return pe.DeletedOn == nil || pe.DeletedOn.IsZero()
}

// ProjectRole is a role an employee plays inside a project.
type ProjectRole struct {
	ProjectRoleID int64  `json:"ProjectRoleId"`
	Role          string `json:"Role"`
	IsActive      bool   `json:"IsActive"`
	CompanyID     int64  `json:"CompanyId"`
}

// AssignmentStatus selects assignments by lifecycle on the collaborator.
type AssignmentStatus string

const (
	AssignmentsAll      AssignmentStatus = "all"
	AssignmentsActive   AssignmentStatus = "active"
	AssignmentsInactive AssignmentStatus = "inactive"
)

// CreateAssignmentRequest is the body of POST /project-employees.
type CreateAssignmentRequest struct {
	EmpID         int64 `json:"EmpId" binding:"required"`
	ProjectID     int64 `json:"ProjectId"`
	ProjectRoleID int64 `json:"ProjectRoleId" binding:"required"`
	CreatedBy     int64 `json:"CreatedBy"`
	CompanyID     int64 `json:"CompanyId"`
}

// UpdateAssignmentRequest is the body of PUT /project-employees/{id}.
type UpdateAssignmentRequest struct {
	ProjectRoleID *int64 `json:"ProjectRoleId,omitempty"`
	ProjectID     *int64 `json:"ProjectId,omitempty"`
	UpdatedBy     int64  `json:"UpdatedBy"`
}
