package views

import (
	"context"

	"worknest-console/internal/listing"
	"worknest-console/internal/models"
	"worknest-console/internal/remote"
	"worknest-console/internal/session"
)

// Every lookup here answers ErrNotFound both for missing rows and for rows
// outside the session's company or role reach, so callers cannot tell them apart.

// reachesProject reports whether the session may act on a project. Managers
// reach only the projects they manage.
func reachesProject(sess *session.Session, p models.Project) bool {
	if p.CompanyID != sess.CompanyID {
		return false
	}
	return sess.Role != models.RoleProjectManager || p.ProjectManager == sess.EmpID
}

// findTask fetches the task the session is allowed to act on.
func (s *Service) findTask(ctx context.Context, sess *session.Session, taskID int64) (*models.Task, error) {
	src, err := s.taskSource(ctx, sess)
	if err != nil {
		return nil, err
	}
	projects := listing.IndexBy(src.Projects, func(p models.Project) int64 { return p.ProjectID })
	for _, t := range src.Tasks {
		if t.TaskID == taskID && canSee(sess, t, projects) {
			task := t
			return &task, nil
		}
	}
	return nil, ErrNotFound
}

// findProject fetches the project the session is allowed to act on.
func (s *Service) findProject(ctx context.Context, sess *session.Session, projectID int64) (*models.Project, error) {
	project, err := s.api(sess).Project(ctx, projectID)
	if remote.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !reachesProject(sess, *project) {
		return nil, ErrNotFound
	}
	return project, nil
}

// findEmployee fetches an employee of the session's company.
func (s *Service) findEmployee(ctx context.Context, sess *session.Session, empID int64) (*models.Employee, error) {
	employees, err := s.api(sess).AllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if e.EmpID == empID && e.CompanyID == sess.CompanyID {
			emp := e
			return &emp, nil
		}
	}
	return nil, ErrNotFound
}

// findAssignment fetches an assignment of the session's company. Managers
// reach only assignments to their own projects.
func (s *Service) findAssignment(ctx context.Context, sess *session.Session, id int64) (*models.ProjectEmployee, error) {
	assignments, err := s.api(sess).ProjectEmployees(ctx, models.AssignmentsAll)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.ProjectEmployeeID != id {
			continue
		}
		if a.CompanyID != sess.CompanyID {
			return nil, ErrNotFound
		}
		if sess.Role == models.RoleProjectManager {
			if _, err := s.findProject(ctx, sess, a.ProjectID); err != nil {
				return nil, err
			}
		}
		assignment := a
		return &assignment, nil
	}
	return nil, ErrNotFound
}

// findTimeLog fetches a time log of the session's company. Employees reach
// only their own logs and managers only logs on tasks they can see.
func (s *Service) findTimeLog(ctx context.Context, sess *session.Session, logID int64) (*models.TimeLog, error) {
	logs, err := s.api(sess).AllTimeLogs(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		if l.LogID != logID {
			continue
		}
		if l.CompanyID != sess.CompanyID {
			return nil, ErrNotFound
		}
		switch sess.Role {
		case models.RoleEmployee:
			if l.EmpID != sess.EmpID {
				return nil, ErrNotFound
			}
		case models.RoleProjectManager:
			if _, err := s.findTask(ctx, sess, l.TaskID); err != nil {
				return nil, err
			}
		}
		log := l
		return &log, nil
	}
	return nil, ErrNotFound
}
