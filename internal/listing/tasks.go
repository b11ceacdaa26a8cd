package listing

import "worknest-console/internal/models"

// TaskFilter holds the task list criteria. Zero values mean "no constraint".
type TaskFilter struct {
	ProjectName string `form:"projectName" json:"projectName"`
	AssignedTo  int64  `form:"assignedTo" json:"assignedTo"`
	Priority    string `form:"priority" json:"priority"`
	TaskName    string `form:"taskName" json:"taskName"`
	ManagerID   int64  `form:"managerId" json:"managerId"`
}

// TaskRow is a task with its foreign keys resolved for display.
type TaskRow struct {
	models.Task
	ProjectName    string `json:"projectName"`
	AssignedToName string `json:"assignedToName"`
}

// TaskSource bundles the collections a task list is resolved from.
type TaskSource struct {
	Tasks     []models.Task
	Projects  []models.Project
	Employees []models.Employee
}

type taskLookup struct {
	projects  Index[int64, models.Project]
	employees Index[int64, models.Employee]
}

func newTaskLookup(src TaskSource, companyID int64) taskLookup {
	return taskLookup{
		projects:  IndexBy(inCompanyProjects(src.Projects, companyID), func(p models.Project) int64 { return p.ProjectID }),
		employees: IndexBy(inCompanyEmployees(src.Employees, companyID), func(e models.Employee) int64 { return e.EmpID }),
	}
}

func (l taskLookup) projectName(id int64, fallback string) string {
	return l.projects.Name(id, func(p models.Project) string { return p.Name }, fallback)
}

func (l taskLookup) employeeName(id int64, fallback string) string {
	return l.employees.Name(id, func(e models.Employee) string { return e.Name }, fallback)
}

func (l taskLookup) keep(companyID int64, f TaskFilter) func(models.Task) bool {
	return func(t models.Task) bool {
		if t.CompanyID != companyID {
			return false
		}
		if !MatchID(t.Assignee(), f.AssignedTo) {
			return false
		}
		if !EqualFold(t.Priority, f.Priority) {
			return false
		}
		if !ContainsFold(t.Name, f.TaskName) {
			return false
		}
		if f.ProjectName != "" && !ContainsFold(l.projectName(t.ProjectID, ""), f.ProjectName) {
			return false
		}
		if f.ManagerID != 0 {
			p, ok := l.projects[t.ProjectID]
			if !ok || p.ProjectManager != f.ManagerID {
				return false
			}
		}
		return true
	}
}

func (l taskLookup) resolve(t models.Task) TaskRow {
	return TaskRow{
		Task:           t,
		ProjectName:    l.projectName(t.ProjectID, UnknownName),
		AssignedToName: l.employeeName(t.Assignee(), Unassigned),
	}
}

// Tasks resolves one page of the task list for a company.
func Tasks(src TaskSource, companyID int64, f TaskFilter, page, limit int) Page[TaskRow] {
	l := newTaskLookup(src, companyID)
	return Paginate(src.Tasks, l.keep(companyID, f), page, limit, l.resolve)
}

// ResolveTask resolves a single task for its detail screen.
func ResolveTask(src TaskSource, companyID int64, t models.Task) TaskRow {
	l := newTaskLookup(src, companyID)
	return TaskRow{
		Task:           t,
		ProjectName:    l.projectName(t.ProjectID, UnknownProject),
		AssignedToName: l.employeeName(t.Assignee(), Unassigned),
	}
}

func inCompanyProjects(projects []models.Project, companyID int64) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out
}

func inCompanyEmployees(employees []models.Employee, companyID int64) []models.Employee {
	out := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out
}
