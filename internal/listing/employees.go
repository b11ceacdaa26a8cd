package listing

import "worknest-console/internal/models"

// EmployeeFilter holds the employee list criteria.
type EmployeeFilter struct {
	Search string `form:"search" json:"search"`
	RoleID int    `form:"roleId" json:"roleId"`
}

// EmployeeRow is an employee with the role name resolved.
type EmployeeRow struct {
	models.Employee
	RoleName string `json:"roleName"`
}

func employeeResolver(roles []models.Role) func(models.Employee) EmployeeRow {
	byID := IndexBy(roles, func(r models.Role) int { return r.RoleID })
	return func(e models.Employee) EmployeeRow {
		return EmployeeRow{
			Employee: e,
			RoleName: byID.Name(e.RoleID, func(r models.Role) string { return r.Role }, UnknownRole),
		}
	}
}

// Employees resolves one page of the employee list from the bulk collection.
func Employees(employees []models.Employee, roles []models.Role, companyID int64, f EmployeeFilter, page, limit int) Page[EmployeeRow] {
	keep := func(e models.Employee) bool {
		return e.CompanyID == companyID &&
			MatchID(int64(e.RoleID), int64(f.RoleID)) &&
			(ContainsFold(e.Name, f.Search) || ContainsFold(e.Email, f.Search))
	}
	return Paginate(employees, keep, page, limit, employeeResolver(roles))
}

// EmployeesFromServer resolves a page the backend already filtered and windowed.
func EmployeesFromServer(data []models.Employee, total, page, limit int, roles []models.Role, companyID int64) Page[EmployeeRow] {
	keep := func(e models.Employee) bool { return e.CompanyID == companyID }
	return FromServer(data, total, page, limit, keep, employeeResolver(roles))
}
