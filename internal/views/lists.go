package views

import (
	"context"

	"worknest-console/internal/listing"
	"worknest-console/internal/logger"
	"worknest-console/internal/models"
	"worknest-console/internal/notify"
	"worknest-console/internal/remote"
	"worknest-console/internal/session"

	"golang.org/x/sync/errgroup"
)

// taskSource fetches tasks, projects and employees concurrently. Employees
// and managers get only their own slice of tasks from the collaborator.
func (s *Service) taskSource(ctx context.Context, sess *session.Session) (listing.TaskSource, error) {
	api := s.api(sess)
	var src listing.TaskSource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		switch sess.Role {
		case models.RoleEmployee:
			src.Tasks, err = api.TasksByAssignee(gctx, sess.EmpID)
		case models.RoleProjectManager:
			src.Tasks, err = api.TasksByManager(gctx, sess.EmpID)
		default:
			src.Tasks, err = api.AllTasks(gctx)
		}
		return err
	})
	g.Go(func() error {
		var err error
		src.Projects, err = api.AllProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		src.Employees, err = api.AllEmployees(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return listing.TaskSource{}, err
	}
	return src, nil
}

// scopeTasks pins the filter to the caller's own work for non-admin roles.
func scopeTasks(sess *session.Session, f listing.TaskFilter) listing.TaskFilter {
	switch sess.Role {
	case models.RoleEmployee:
		f.AssignedTo = sess.EmpID
	case models.RoleProjectManager:
		f.ManagerID = sess.EmpID
	}
	return f
}

// clamped re-runs build on the last page when page ran past the end.
func clamped[T any](page int, build func(page int) listing.Page[T]) listing.Page[T] {
	out := build(page)
	if len(out.Data) == 0 && out.Total > 0 && page > out.TotalPages {
		out = build(listing.Clamp(page, out.TotalPages))
	}
	return out
}

// TaskList is the paginated task list.
func (s *Service) TaskList(ctx context.Context, sess *session.Session, f listing.TaskFilter, page int) (listing.Page[listing.TaskRow], error) {
	src, err := s.taskSource(ctx, sess)
	if err != nil {
		return listing.Page[listing.TaskRow]{}, err
	}
	f = scopeTasks(sess, f)
	return clamped(page, func(p int) listing.Page[listing.TaskRow] {
		return listing.Tasks(src, sess.CompanyID, f, p, s.limits.Tasks)
	}), nil
}

// ProjectList is the paginated project list. Managers see only their projects.
func (s *Service) ProjectList(ctx context.Context, sess *session.Session, f listing.ProjectFilter, page int) (listing.Page[listing.ProjectRow], error) {
	api := s.api(sess)
	var projects []models.Project
	var employees []models.Employee

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sess.Role == models.RoleProjectManager {
			projects, err = api.ProjectsByManager(gctx, sess.EmpID)
		} else {
			projects, err = api.AllProjects(gctx)
		}
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = api.AllEmployees(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return listing.Page[listing.ProjectRow]{}, err
	}

	if sess.Role == models.RoleProjectManager {
		f.ProjectManager = sess.EmpID
	}
	return clamped(page, func(p int) listing.Page[listing.ProjectRow] {
		return listing.Projects(projects, employees, sess.CompanyID, f, p, s.limits.Projects)
	}), nil
}

// EmployeeList is the employee list, paginated by the collaborator. A
// collaborator without the paginated endpoint is served from the bulk table.
func (s *Service) EmployeeList(ctx context.Context, sess *session.Session, f listing.EmployeeFilter, page int) (listing.Page[listing.EmployeeRow], error) {
	if page < 1 {
		page = 1
	}
	limit := s.limits.Employees
	api := s.api(sess)

	req := remote.EmployeePageRequest{Page: page, PageLimit: limit, Search: f.Search, CompanyID: sess.CompanyID}
	if f.RoleID != 0 {
		role := f.RoleID
		req.RoleID = &role
	}

	var result *remote.EmployeePage
	var roles []models.Role
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = api.EmployeesPage(gctx, req)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = api.Roles(gctx)
		return err
	})
	err := g.Wait()
	if remote.IsNotFound(err) {
		logger.WarnLog(ctx, "employee page unavailable, resolving from the bulk list: %v", err)
		return s.employeeListFromBulk(ctx, sess, f, page)
	}
	if err != nil {
		return listing.Page[listing.EmployeeRow]{}, err
	}

	totalPages := listing.TotalPages(result.Total, limit)
	if len(result.Data) == 0 && result.Total > 0 && page > totalPages {
		req.Page = listing.Clamp(page, totalPages)
		retry, err := api.EmployeesPage(ctx, req)
		if err != nil {
			return listing.Page[listing.EmployeeRow]{}, err
		}
		result, page = retry, req.Page
	}
	return listing.EmployeesFromServer(result.Data, result.Total, page, limit, roles, sess.CompanyID), nil
}

func (s *Service) employeeListFromBulk(ctx context.Context, sess *session.Session, f listing.EmployeeFilter, page int) (listing.Page[listing.EmployeeRow], error) {
	api := s.api(sess)
	var employees []models.Employee
	var roles []models.Role

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = api.AllEmployees(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = api.Roles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return listing.Page[listing.EmployeeRow]{}, err
	}
	return clamped(page, func(p int) listing.Page[listing.EmployeeRow] {
		return listing.Employees(employees, roles, sess.CompanyID, f, p, s.limits.Employees)
	}), nil
}

func (s *Service) timeLogSource(ctx context.Context, sess *session.Session) (listing.TimeLogSource, error) {
	api := s.api(sess)
	var src listing.TimeLogSource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src.Logs, err = api.AllTimeLogs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		src.Tasks, err = api.AllTasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		src.Employees, err = api.AllEmployees(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return listing.TimeLogSource{}, err
	}
	return src, nil
}

// Report is the paginated time-log report.
func (s *Service) Report(ctx context.Context, sess *session.Session, f listing.TimeLogFilter, page int) (listing.Page[listing.TimeLogRow], error) {
	if err := checkRange(f.From, f.To); err != nil {
		return listing.Page[listing.TimeLogRow]{}, err
	}
	src, err := s.timeLogSource(ctx, sess)
	if err != nil {
		return listing.Page[listing.TimeLogRow]{}, err
	}
	return clamped(page, func(p int) listing.Page[listing.TimeLogRow] {
		return listing.TimeLogs(src, sess.CompanyID, f, p, s.limits.Report)
	}), nil
}

// ReportRows is every report row matching f, for export. Both dates are required.
func (s *Service) ReportRows(ctx context.Context, sess *session.Session, f listing.TimeLogFilter) ([]listing.TimeLogRow, error) {
	if f.From.IsZero() || f.To.IsZero() {
		return nil, &ValidationError{Notice: notify.ExportRangeRequired()}
	}
	if err := checkRange(f.From, f.To); err != nil {
		return nil, err
	}
	src, err := s.timeLogSource(ctx, sess)
	if err != nil {
		return nil, err
	}
	return listing.AllTimeLogs(src, sess.CompanyID, f), nil
}

func checkRange(from, to models.Date) error {
	if !from.IsZero() && !to.IsZero() && to.Before(from.Time) {
		return &ValidationError{Notice: notify.EndBeforeStart()}
	}
	return nil
}
