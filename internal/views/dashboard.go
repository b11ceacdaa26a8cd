package views

import (
	"context"

	"worknest-console/internal/charts"
	"worknest-console/internal/listing"
	"worknest-console/internal/models"
	"worknest-console/internal/session"

	"golang.org/x/sync/errgroup"
)

// AdminDashboard is the company-wide home screen.
func (s *Service) AdminDashboard(ctx context.Context, sess *session.Session) (charts.AdminSummary, error) {
	src, err := s.taskSource(ctx, sess)
	if err != nil {
		return charts.AdminSummary{}, err
	}
	return charts.Admin(src, sess.CompanyID, s.now()), nil
}

// ManagerDashboard is the project manager's home screen. projectID selects
// the project the status pie describes; 0 picks the first managed project.
func (s *Service) ManagerDashboard(ctx context.Context, sess *session.Session, projectID int64) (charts.ManagerSummary, error) {
	api := s.api(sess)
	var src listing.TaskSource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src.Projects, err = api.ProjectsByManager(gctx, sess.EmpID)
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
		return charts.ManagerSummary{}, err
	}

	managed := make([]models.Project, 0, len(src.Projects))
	for _, p := range src.Projects {
		if p.ProjectManager == sess.EmpID {
			managed = append(managed, p)
		}
	}
	return charts.Manager(managed, src, sess.CompanyID, projectID, s.now()), nil
}

// EmployeeDashboard is an employee's home screen.
func (s *Service) EmployeeDashboard(ctx context.Context, sess *session.Session) (charts.EmployeeSummary, error) {
	api := s.api(sess)
	var src listing.TaskSource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src.Tasks, err = api.TasksByAssignee(gctx, sess.EmpID)
		return err
	})
	g.Go(func() error {
		var err error
		src.Projects, err = api.AllProjects(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return charts.EmployeeSummary{}, err
	}
	return charts.Employee(src, sess.CompanyID, sess.EmpID), nil
}
