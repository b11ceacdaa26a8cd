package models

// RoleCode is the numeric privilege level stored in the session.
type RoleCode int

const (
	RoleNone           RoleCode = 0
	RoleAdmin          RoleCode = 8
	RoleEmployee       RoleCode = 10
	RoleProjectManager RoleCode = 11
	RoleSuperAdmin     RoleCode = 12
)

var roleNames = map[RoleCode]string{
	RoleAdmin:          "admin",
	RoleEmployee:       "employee",
	RoleProjectManager: "project_manager",
	RoleSuperAdmin:     "super_admin",
}

// Name returns the policy name of a known role code, or "" for anything else.
func (r RoleCode) Name() string {
	return roleNames[r]
}

// Known reports whether r is one of the four recognized codes.
func (r RoleCode) Known() bool {
	_, ok := roleNames[r]
	return ok
}

// RoleFromName maps a policy name back to its code.
func RoleFromName(name string) (RoleCode, bool) {
	for code, n := range roleNames {
		if n == name {
			return code, true
		}
	}
	return RoleNone, false
}

// Role is a company privilege level as served by /allroles.
type Role struct {
	RoleID    int    `json:"role_id"`
	Role      string `json:"role"`
	CompanyID int64  `json:"company_id"`
	IsActive  bool   `json:"is_active"`
}

// CreateRoleRequest is the body of POST /roles.
type CreateRoleRequest struct {
	Role      string `json:"role" binding:"required"`
	CompanyID int64  `json:"company_id"`
	IsActive  bool   `json:"is_active"`
	CreatedBy int64  `json:"created_by"`
}

// UpdateRoleRequest is the body of PUT /roles/{id}. The collaborator
// rejects a body that changes nothing.
type UpdateRoleRequest struct {
	Role      *string `json:"role,omitempty"`
	CompanyID *int64  `json:"company_id,omitempty"`
	UpdatedBy int64   `json:"updated_by"`
}
