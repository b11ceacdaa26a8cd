package listing

import (
	"strconv"

	"worknest-console/internal/models"
)

// TimeLogFilter holds the report criteria. Zero dates leave that end of the range open.
type TimeLogFilter struct {
	EmpID    int64
	TaskName string
	From     models.Date
	To       models.Date
}

// TimeLogRow is a time log with employee and task resolved.
type TimeLogRow struct {
	models.TimeLog
	EmployeeName  string `json:"employeeName"`
	TaskName      string `json:"taskName"`
	TimeSpent     string `json:"timeSpent"`
	ExpectedHours string `json:"expectedHours"`
}

// TimeLogSource bundles the collections a report is resolved from.
type TimeLogSource struct {
	Logs      []models.TimeLog
	Tasks     []models.Task
	Employees []models.Employee
}

func timeLogFuncs(src TimeLogSource, companyID int64, f TimeLogFilter) (func(models.TimeLog) bool, func(models.TimeLog) TimeLogRow) {
	employees := IndexBy(inCompanyEmployees(src.Employees, companyID), func(e models.Employee) int64 { return e.EmpID })
	tasks := IndexBy(src.Tasks, func(t models.Task) int64 { return t.TaskID })

	taskName := func(id int64) string {
		if t, ok := tasks[id]; ok && t.CompanyID == companyID {
			return t.Name
		}
		return UnknownTask
	}

	keep := func(l models.TimeLog) bool {
		if l.CompanyID != companyID || !MatchID(l.EmpID, f.EmpID) {
			return false
		}
		if f.TaskName != "" && !ContainsFold(taskName(l.TaskID), f.TaskName) {
			return false
		}
		if !f.From.IsZero() && l.Date.Before(f.From.Time) {
			return false
		}
		if !f.To.IsZero() && l.Date.After(f.To.Time) {
			return false
		}
		return true
	}

	resolve := func(l models.TimeLog) TimeLogRow {
		expected := "-"
		if t, ok := tasks[l.TaskID]; ok && t.ExpectedHrs != nil {
			expected = strconv.FormatFloat(float64(*t.ExpectedHrs), 'f', -1, 64)
		}
		return TimeLogRow{
			TimeLog:       l,
			EmployeeName:  employees.Name(l.EmpID, func(e models.Employee) string { return e.Name }, UnknownName),
			TaskName:      taskName(l.TaskID),
			TimeSpent:     l.Spent(),
			ExpectedHours: expected,
		}
	}
	return keep, resolve
}

// TimeLogs resolves one page of the time-log report.
func TimeLogs(src TimeLogSource, companyID int64, f TimeLogFilter, page, limit int) Page[TimeLogRow] {
	keep, resolve := timeLogFuncs(src, companyID, f)
	return Paginate(src.Logs, keep, page, limit, resolve)
}

// AllTimeLogs resolves every matching log, unpaginated, for export.
func AllTimeLogs(src TimeLogSource, companyID int64, f TimeLogFilter) []TimeLogRow {
	keep, resolve := timeLogFuncs(src, companyID, f)
	return All(src.Logs, keep, resolve)
}
