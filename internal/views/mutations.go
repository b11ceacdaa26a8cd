package views

import (
	"context"
	"io"
	"strings"

	"worknest-console/internal/models"
	"worknest-console/internal/notify"
	"worknest-console/internal/remote"
	"worknest-console/internal/session"
)

// Entities, as named in realtime events.
const (
	EntityTask       = "task"
	EntityProject    = "project"
	EntityEmployee   = "employee"
	EntityAssignment = "assignment"
	EntityTimeLog    = "timelog"
)

func invalid(msg string) error {
	return &ValidationError{Notice: notify.Invalid(msg)}
}

// CreateTask creates a task in the session's company.
func (s *Service) CreateTask(ctx context.Context, sess *session.Session, req models.CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Name) == "" || req.ProjectID <= 0 {
		return nil, invalid("Task name and project are required.")
	}
	if _, err := s.findProject(ctx, sess, req.ProjectID); err != nil {
		return nil, err
	}
	if req.AssignedTo != nil {
		if err := s.checkAssignable(ctx, sess, req.ProjectID, *req.AssignedTo); err != nil {
			return nil, err
		}
	}
	if req.Status == "" {
		req.Status = models.TaskPending
	}
	req.CompanyID = sess.CompanyID
	req.CreatedBy = sess.EmpID

	task, err := s.api(sess).CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityTask, "created", task.TaskID)
	return task, nil
}

// UpdateTask applies a partial update. A new assignee must be on the task's
// project, which is the new project when that changes too.
func (s *Service) UpdateTask(ctx context.Context, sess *session.Session, taskID int64, req models.UpdateTaskRequest) (*models.Task, error) {
	current, err := s.findTask(ctx, sess, taskID)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && models.RequiresTimeLog(current.Status, *req.Status) {
		return nil, ErrTimeLogRequired
	}
	if req.ProjectID != nil && *req.ProjectID != current.ProjectID {
		if _, err := s.findProject(ctx, sess, *req.ProjectID); err != nil {
			return nil, err
		}
	}
	if req.AssignedTo != nil {
		projectID := current.ProjectID
		if req.ProjectID != nil {
			projectID = *req.ProjectID
		}
		if err := s.checkAssignable(ctx, sess, projectID, *req.AssignedTo); err != nil {
			return nil, err
		}
	}
	req.UpdatedBy = sess.EmpID

	task, err := s.api(sess).UpdateTask(ctx, taskID, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityTask, "updated", taskID)
	return task, nil
}

// TimeLogInput is the time log that accompanies a status change.
type TimeLogInput struct {
	Date         models.Date `json:"date"`
	HoursSpent   int         `json:"hoursSpent"`
	MinutesSpent int         `json:"minutesSpent"`
	Description  string      `json:"description"`
}

// StatusChange moves a task to a new status, with a time log when required.
type StatusChange struct {
	Status models.TaskStatus `json:"status" binding:"required"`
	Log    *TimeLogInput     `json:"log"`
}

// StatusResult reports what a status change did.
type StatusResult struct {
	Task *models.Task    `json:"task"`
	Log  *models.TimeLog `json:"log,omitempty"`
}

// ChangeTaskStatus writes the time log first and then the status, so a task
// never reaches a state that demanded a log without one.
func (s *Service) ChangeTaskStatus(ctx context.Context, sess *session.Session, taskID int64, change StatusChange) (*StatusResult, error) {
	current, err := s.findTask(ctx, sess, taskID)
	if err != nil {
		return nil, err
	}

	needLog := models.RequiresTimeLog(current.Status, change.Status)
	if needLog && (change.Log == nil || change.Log.HoursSpent*60+change.Log.MinutesSpent <= 0) {
		return nil, ErrTimeLogRequired
	}

	api := s.api(sess)
	out := &StatusResult{}
	if change.Log != nil && change.Log.HoursSpent*60+change.Log.MinutesSpent > 0 {
		date := change.Log.Date
		if date.IsZero() {
			date = models.NewDate(s.now())
		}
		log, err := api.CreateTimeLog(ctx, models.CreateTimeLogRequest{
			EmpID:        sess.EmpID,
			TaskID:       taskID,
			Date:         date,
			CompanyID:    sess.CompanyID,
			Description:  change.Log.Description,
			HoursSpent:   change.Log.HoursSpent,
			MinutesSpent: change.Log.MinutesSpent,
			CreatedBy:    sess.EmpID,
		})
		if err != nil {
			return nil, err
		}
		out.Log = log
		s.publish(ctx, sess, EntityTimeLog, "created", log.LogID)
	}

	status := change.Status
	task, err := api.UpdateTask(ctx, taskID, models.UpdateTaskRequest{Status: &status, UpdatedBy: sess.EmpID})
	if err != nil {
		return out, err
	}
	out.Task = task
	s.publish(ctx, sess, EntityTask, "status", taskID)
	return out, nil
}

// DeleteTask soft-deletes a task.
func (s *Service) DeleteTask(ctx context.Context, sess *session.Session, taskID int64) (remote.Result, error) {
	if _, err := s.findTask(ctx, sess, taskID); err != nil {
		return nil, err
	}
	res, err := s.api(sess).DeleteTask(ctx, taskID, sess.EmpID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityTask, "deleted", taskID)
	return res, nil
}

// ProjectInput is a project as the console submits it. Statuses is the
// multi-select; it is stored comma-joined.
type ProjectInput struct {
	Name           string           `json:"name" binding:"required"`
	StartDate      models.Timestamp `json:"startDate"`
	EndDate        models.Timestamp `json:"endDate"`
	ProjectManager int64            `json:"projectManager" binding:"required"`
	Priority       string           `json:"priority"`
	Statuses       []string         `json:"statuses"`
	Description    string           `json:"description"`
}

// ProjectPatch carries only the fields being changed.
type ProjectPatch struct {
	Name           *string           `json:"name"`
	StartDate      *models.Timestamp `json:"startDate"`
	EndDate        *models.Timestamp `json:"endDate"`
	ProjectManager *int64            `json:"projectManager"`
	Priority       *string           `json:"priority"`
	Statuses       []string          `json:"statuses"`
	Description    *string           `json:"description"`
	IsActive       *bool             `json:"isActive"`
}

func checkPriority(p string) error {
	if p != "" && !models.ProjectPriority(p).Valid() {
		return invalid("Priority must be one of Low, Medium, High or Critical.")
	}
	return nil
}

func checkDates(start, end models.Timestamp) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		return &ValidationError{Notice: notify.EndBeforeStart()}
	}
	return nil
}

// CreateProject creates a project in the session's company.
func (s *Service) CreateProject(ctx context.Context, sess *session.Session, in ProjectInput) (remote.Result, error) {
	if err := checkPriority(in.Priority); err != nil {
		return nil, err
	}
	if err := checkDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	req := models.CreateProjectRequest{
		Name:           strings.TrimSpace(in.Name),
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		ProjectManager: in.ProjectManager,
		Priority:       in.Priority,
		Status:         models.StatusSet(in.Statuses).String(),
		CompanyID:      sess.CompanyID,
		Description:    in.Description,
		IsActive:       true,
		CreatedBy:      sess.EmpID,
	}
	res, err := s.api(sess).CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityProject, "created", 0)
	return res, nil
}

// UpdateProject applies a partial update. Managers may only edit their own projects.
func (s *Service) UpdateProject(ctx context.Context, sess *session.Session, projectID int64, in ProjectPatch) (remote.Result, error) {
	current, err := s.findProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}

	if in.Priority != nil {
		if err := checkPriority(*in.Priority); err != nil {
			return nil, err
		}
	}
	start, end := current.StartDate, current.EndDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if err := checkDates(start, end); err != nil {
		return nil, err
	}

	req := models.UpdateProjectRequest{
		Name:           in.Name,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		ProjectManager: in.ProjectManager,
		Priority:       in.Priority,
		Description:    in.Description,
		IsActive:       in.IsActive,
		UpdatedBy:      sess.EmpID,
	}
	if in.Statuses != nil {
		joined := models.StatusSet(in.Statuses).String()
		req.Status = &joined
	}
	res, err := s.api(sess).UpdateProject(ctx, projectID, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityProject, "updated", projectID)
	return res, nil
}

// DeleteProject soft-deletes a project.
func (s *Service) DeleteProject(ctx context.Context, sess *session.Session, projectID int64) (remote.Result, error) {
	if _, err := s.findProject(ctx, sess, projectID); err != nil {
		return nil, err
	}
	res, err := s.api(sess).DeleteProject(ctx, projectID, sess.EmpID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityProject, "deleted", projectID)
	return res, nil
}

// CreateEmployee creates an employee in the session's company.
func (s *Service) CreateEmployee(ctx context.Context, sess *session.Session, req models.CreateEmployeeRequest) (remote.Result, error) {
	req.CompanyID = sess.CompanyID
	req.CreatedBy = sess.EmpID
	res, err := s.api(sess).CreateEmployee(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityEmployee, "created", 0)
	return res, nil
}

// UpdateEmployee applies a partial update to an employee of the session's company.
func (s *Service) UpdateEmployee(ctx context.Context, sess *session.Session, empID int64, req models.UpdateEmployeeRequest) (remote.Result, error) {
	if _, err := s.findEmployee(ctx, sess, empID); err != nil {
		return nil, err
	}
	req.UpdatedBy = sess.EmpID
	res, err := s.api(sess).UpdateEmployee(ctx, empID, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityEmployee, "updated", empID)
	return res, nil
}

// UpdateProfile lets any session edit its own employee record.
func (s *Service) UpdateProfile(ctx context.Context, sess *session.Session, req models.UpdateEmployeeRequest) (remote.Result, error) {
	req.RoleID = nil
	return s.UpdateEmployee(ctx, sess, sess.EmpID, req)
}

// DeleteEmployee soft-deletes an employee. A session cannot delete itself.
func (s *Service) DeleteEmployee(ctx context.Context, sess *session.Session, empID int64) (remote.Result, error) {
	if empID == sess.EmpID {
		return nil, invalid("You cannot delete your own account.")
	}
	if _, err := s.findEmployee(ctx, sess, empID); err != nil {
		return nil, err
	}
	res, err := s.api(sess).DeleteEmployee(ctx, empID, sess.EmpID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityEmployee, "deleted", empID)
	return res, nil
}

// CreateAssignment adds an employee of the company to a project the session reaches.
func (s *Service) CreateAssignment(ctx context.Context, sess *session.Session, projectID int64, req models.CreateAssignmentRequest) (remote.Result, error) {
	if _, err := s.findProject(ctx, sess, projectID); err != nil {
		return nil, err
	}
	if _, err := s.findEmployee(ctx, sess, req.EmpID); err != nil {
		return nil, err
	}
	req.ProjectID = projectID
	req.CompanyID = sess.CompanyID
	req.CreatedBy = sess.EmpID
	res, err := s.api(sess).CreateAssignment(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityAssignment, "created", projectID)
	return res, nil
}

// UpdateAssignment changes an assignment's project role.
func (s *Service) UpdateAssignment(ctx context.Context, sess *session.Session, id int64, req models.UpdateAssignmentRequest) (remote.Result, error) {
	if _, err := s.findAssignment(ctx, sess, id); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if _, err := s.findProject(ctx, sess, *req.ProjectID); err != nil {
			return nil, err
		}
	}
	req.UpdatedBy = sess.EmpID
	res, err := s.api(sess).UpdateAssignment(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityAssignment, "updated", id)
	return res, nil
}

// DeleteAssignment ends an assignment.
func (s *Service) DeleteAssignment(ctx context.Context, sess *session.Session, id int64) (remote.Result, error) {
	if _, err := s.findAssignment(ctx, sess, id); err != nil {
		return nil, err
	}
	res, err := s.api(sess).DeleteAssignment(ctx, id, sess.EmpID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityAssignment, "deleted", id)
	return res, nil
}

// CreateTimeLog records time against a task. Employees always log as themselves.
func (s *Service) CreateTimeLog(ctx context.Context, sess *session.Session, req models.CreateTimeLogRequest) (*models.TimeLog, error) {
	if req.TaskID <= 0 || req.HoursSpent*60+req.MinutesSpent <= 0 {
		return nil, invalid("Please fill in all required log time details.")
	}
	if req.EmpID == 0 || sess.Role == models.RoleEmployee {
		req.EmpID = sess.EmpID
	}
	if _, err := s.findTask(ctx, sess, req.TaskID); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		req.Date = models.NewDate(s.now())
	}
	req.CompanyID = sess.CompanyID
	req.CreatedBy = sess.EmpID

	log, err := s.api(sess).CreateTimeLog(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityTimeLog, "created", log.LogID)
	return log, nil
}

// UpdateTimeLog applies a partial update. A log cannot be moved onto a task
// the session does not reach.
func (s *Service) UpdateTimeLog(ctx context.Context, sess *session.Session, id int64, req models.UpdateTimeLogRequest) (remote.Result, error) {
	if _, err := s.findTimeLog(ctx, sess, id); err != nil {
		return nil, err
	}
	if req.TaskID != nil {
		if _, err := s.findTask(ctx, sess, *req.TaskID); err != nil {
			return nil, err
		}
	}
	req.UpdatedBy = sess.EmpID
	if sess.Role == models.RoleEmployee {
		req.EmpID = nil
	}
	res, err := s.api(sess).UpdateTimeLog(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityTimeLog, "updated", id)
	return res, nil
}

// DeleteTimeLog soft-deletes a time log.
func (s *Service) DeleteTimeLog(ctx context.Context, sess *session.Session, id int64) (remote.Result, error) {
	if _, err := s.findTimeLog(ctx, sess, id); err != nil {
		return nil, err
	}
	res, err := s.api(sess).DeleteTimeLog(ctx, id, sess.EmpID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityTimeLog, "deleted", id)
	return res, nil
}

// Upload forwards a document to the collaborator.
func (s *Service) Upload(ctx context.Context, sess *session.Session, filename string, content io.Reader) (*models.Attachment, error) {
	return s.api(sess).Upload(ctx, filename, content)
}
