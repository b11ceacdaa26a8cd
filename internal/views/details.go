package views

import (
	"context"

	"worknest-console/internal/listing"
	"worknest-console/internal/models"
	"worknest-console/internal/remote"
	"worknest-console/internal/session"

	"golang.org/x/sync/errgroup"
)

// TaskDetail is a task with its names resolved and its time logs.
type TaskDetail struct {
	listing.TaskRow
	Logs []listing.TimeLogRow `json:"logs"`
}

// canSee reports whether the session may open a task. Admins see the whole
// company; managers their projects' tasks; employees their own tasks.
func canSee(sess *session.Session, t models.Task, projects listing.Index[int64, models.Project]) bool {
	if t.CompanyID != sess.CompanyID {
		return false
	}
	switch sess.Role {
	case models.RoleEmployee:
		return t.Assignee() == sess.EmpID
	case models.RoleProjectManager:
		p, ok := projects[t.ProjectID]
		return ok && p.ProjectManager == sess.EmpID
	default:
		return true
	}
}

// TaskDetail loads employees and projects first, then the tasks and the
// task's logs: resolving the task needs the first two tables.
func (s *Service) TaskDetail(ctx context.Context, sess *session.Session, taskID int64) (*TaskDetail, error) {
	api := s.api(sess)
	var src listing.TaskSource

	first, fctx := errgroup.WithContext(ctx)
	first.Go(func() error {
		var err error
		src.Employees, err = api.AllEmployees(fctx)
		return err
	})
	first.Go(func() error {
		var err error
		src.Projects, err = api.AllProjects(fctx)
		return err
	})
	if err := first.Wait(); err != nil {
		return nil, err
	}

	var logs []models.TimeLog
	second, sctx := errgroup.WithContext(ctx)
	second.Go(func() error {
		var err error
		src.Tasks, err = api.AllTasks(sctx)
		return err
	})
	second.Go(func() error {
		var err error
		logs, err = api.TimeLogsByTask(sctx, taskID)
		if remote.IsNotFound(err) {
			logs, err = nil, nil
		}
		return err
	})
	if err := second.Wait(); err != nil {
		return nil, err
	}

	projects := listing.IndexBy(src.Projects, func(p models.Project) int64 { return p.ProjectID })
	var task *models.Task
	for i := range src.Tasks {
		if src.Tasks[i].TaskID == taskID {
			task = &src.Tasks[i]
			break
		}
	}
	if task == nil || !canSee(sess, *task, projects) {
		return nil, ErrNotFound
	}

	logSrc := listing.TimeLogSource{Logs: logs, Tasks: src.Tasks, Employees: src.Employees}
	return &TaskDetail{
		TaskRow: listing.ResolveTask(src, sess.CompanyID, *task),
		Logs:    listing.AllTimeLogs(logSrc, sess.CompanyID, listing.TimeLogFilter{}),
	}, nil
}

// Member is one employee's assignment to a project.
type Member struct {
	AssignmentID int64            `json:"assignmentId"`
	EmpID        int64            `json:"empId"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	RoleID       int64            `json:"projectRoleId"`
	RoleName     string           `json:"roleName"`
	JoinedOn     models.Timestamp `json:"joinedOn"`
	EndDate      string           `json:"endDate"`
	Active       bool             `json:"active"`
}

// ProjectDetail is a project with its manager and members resolved.
type ProjectDetail struct {
	models.Project
	ManagerName string           `json:"managerName"`
	Statuses    models.StatusSet `json:"statuses"`
	Members     []Member         `json:"members"`
}

// ProjectDetail joins the project with employees, assignments and project roles.
func (s *Service) ProjectDetail(ctx context.Context, sess *session.Session, projectID int64) (*ProjectDetail, error) {
	api := s.api(sess)
	var (
		project     *models.Project
		employees   []models.Employee
		assignments []models.ProjectEmployee
		roles       []models.ProjectRole
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = api.Project(gctx, projectID)
		if remote.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = api.AllEmployees(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = api.ProjectEmployeesFor(gctx, sess.CompanyID, projectID, models.AssignmentsAll)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = api.ProjectRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if project == nil || !reachesProject(sess, *project) {
		return nil, ErrNotFound
	}

	people := listing.IndexBy(employees, func(e models.Employee) int64 { return e.EmpID })
	roleNames := listing.IndexBy(roles, func(r models.ProjectRole) int64 { return r.ProjectRoleID })

	detail := &ProjectDetail{
		Project:     *project,
		ManagerName: people.Name(project.ProjectManager, func(e models.Employee) string { return e.Name }, listing.UnknownManager),
		Statuses:    project.Statuses(),
		Members:     []Member{},
	}
	for _, a := range assignments {
		if a.ProjectID != projectID || a.CompanyID != sess.CompanyID {
			continue
		}
		m := Member{
			AssignmentID: a.ProjectEmployeeID,
			EmpID:        a.EmpID,
			Name:         people.Name(a.EmpID, func(e models.Employee) string { return e.Name }, listing.UnknownName),
			Email:        people.Name(a.EmpID, func(e models.Employee) string { return e.Email }, ""),
			RoleID:       a.ProjectRoleID,
			RoleName:     roleNames.Name(a.ProjectRoleID, func(r models.ProjectRole) string { return r.Role }, listing.UnknownRole),
			JoinedOn:     a.CreatedOn,
			EndDate:      "Active",
			Active:       a.Active(),
		}
		if !m.Active {
			m.EndDate = models.NewDate(a.DeletedOn.Time).String()
		}
		detail.Members = append(detail.Members, m)
	}
	return detail, nil
}

// Assignable lists the company's employees with an active assignment to the project.
func (s *Service) Assignable(ctx context.Context, sess *session.Session, projectID int64) ([]models.Employee, error) {
	api := s.api(sess)
	var employees []models.Employee
	var assignments []models.ProjectEmployee

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = api.AllEmployees(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = api.ProjectEmployeesFor(gctx, sess.CompanyID, projectID, models.AssignmentsActive)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	active := make(map[int64]struct{})
	for _, a := range assignments {
		if a.ProjectID == projectID && a.CompanyID == sess.CompanyID && a.Active() {
			active[a.EmpID] = struct{}{}
		}
	}
	out := []models.Employee{}
	for _, e := range employees {
		if e.CompanyID != sess.CompanyID {
			continue
		}
		if _, ok := active[e.EmpID]; ok {
			out = append(out, e)
			delete(active, e.EmpID)
		}
	}
	return out, nil
}

// checkAssignable rejects an assignee who is not on the project.
func (s *Service) checkAssignable(ctx context.Context, sess *session.Session, projectID, empID int64) error {
	employees, err := s.Assignable(ctx, sess, projectID)
	if err != nil {
		return err
	}
	for _, e := range employees {
		if e.EmpID == empID {
			return nil
		}
	}
	return ErrNotAssignable
}
