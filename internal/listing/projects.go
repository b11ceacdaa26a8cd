package listing

import "worknest-console/internal/models"

// ProjectFilter holds the project list criteria.
type ProjectFilter struct {
	Name           string `form:"name" json:"name"`
	Status         string `form:"status" json:"status"`
	Priority       string `form:"priority" json:"priority"`
	ProjectManager int64  `form:"projectManager" json:"projectManager"`
}

// ProjectRow is a project with its manager resolved and status parsed.
type ProjectRow struct {
	models.Project
	ManagerName string           `json:"managerName"`
	Statuses    models.StatusSet `json:"statuses"`
}

// Projects resolves one page of the project list for a company.
func Projects(projects []models.Project, employees []models.Employee, companyID int64, f ProjectFilter, page, limit int) Page[ProjectRow] {
	managers := IndexBy(inCompanyEmployees(employees, companyID), func(e models.Employee) int64 { return e.EmpID })

	keep := func(p models.Project) bool {
		return p.CompanyID == companyID &&
			ContainsFold(p.Name, f.Name) &&
			EqualFold(p.Priority, f.Priority) &&
			MatchID(p.ProjectManager, f.ProjectManager) &&
			(f.Status == "" || p.Statuses().Has(f.Status))
	}
	resolve := func(p models.Project) ProjectRow {
		return ProjectRow{
			Project:     p,
			ManagerName: managers.Name(p.ProjectManager, func(e models.Employee) string { return e.Name }, UnknownName),
			Statuses:    p.Statuses(),
		}
	}
	return Paginate(projects, keep, page, limit, resolve)
}
