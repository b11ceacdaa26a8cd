// Package charts buckets fetched tasks and projects into dashboard series.
package charts

import (
	"time"

	"worknest-console/internal/listing"
	"worknest-console/internal/models"
)

// Recent-task windows.
const (
	AdminRecentWindow   = 48 * time.Hour
	ManagerRecentWindow = 24 * time.Hour
	EmployeeRecentCount = 3
)

// Count is one bar or slice.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Series is an ordered set of counts; labels always appear, even at zero.
type Series []Count

func newSeries(labels ...string) Series {
	s := make(Series, len(labels))
	for i, l := range labels {
		s[i] = Count{Label: l}
	}
	return s
}

func (s Series) add(label string) bool {
	for i := range s {
		if s[i].Label == label {
			s[i].Value++
			return true
		}
	}
	return false
}

// Get returns the count for label, or 0.
func (s Series) Get(label string) int {
	for _, c := range s {
		if c.Label == label {
			return c.Value
		}
	}
	return 0
}

// AdminSummary feeds the admin and super-admin home screen.
type AdminSummary struct {
	TaskStatus      Series            `json:"taskStatus"`
	ProjectPriority Series            `json:"projectPriority"`
	RecentTasks     []listing.TaskRow `json:"recentTasks"`
}

// adminStatusLabel maps a task status onto the admin pie.
func adminStatusLabel(s models.TaskStatus) string {
	if s == "InProgress" {
		return "InProgress"
	}
	switch s.Class() {
	case models.ClassPending:
		return "Pending"
	case models.ClassActive:
		return "InProgress"
	case models.ClassFinished:
		return "Completed"
	default:
		return "Other"
	}
}

// Admin builds the company-wide dashboard.
func Admin(src listing.TaskSource, companyID int64, now time.Time) AdminSummary {
	out := AdminSummary{
		TaskStatus:      newSeries("InProgress", "Completed", "Pending", "Other"),
		ProjectPriority: newSeries("High", "Medium", "Low", "Critical"),
		RecentTasks:     []listing.TaskRow{},
	}

	for _, p := range src.Projects {
		if p.CompanyID == companyID {
			out.ProjectPriority.add(p.Priority)
		}
	}

	cutoff := now.Add(-AdminRecentWindow)
	for _, t := range src.Tasks {
		if t.CompanyID != companyID {
			continue
		}
		out.TaskStatus.add(adminStatusLabel(t.Status))
		if !t.CreatedOn.IsZero() && !t.CreatedOn.Before(cutoff) {
			out.RecentTasks = append(out.RecentTasks, listing.ResolveTask(src, companyID, t))
		}
	}
	return out
}

// ManagerSummary feeds the project-manager home screen.
type ManagerSummary struct {
	Projects          []models.Project  `json:"projects"`
	Selected          *models.Project   `json:"selected"`
	TaskStatus        Series            `json:"taskStatus"`
	OngoingByPriority Series            `json:"ongoingByPriority"`
	RecentTasks       []listing.TaskRow `json:"recentTasks"`
}

// managerBucket maps a task status onto the manager pie. Unknown values count as pending.
func managerBucket(s models.TaskStatus) string {
	switch s.Class() {
	case models.ClassActive:
		return "Ongoing"
	case models.ClassFinished:
		return "Done"
	default:
		return "Pending"
	}
}

// Manager builds the dashboard of a project manager. managed is the list of
// projects the manager owns; selectedID picks the project the pie describes,
// defaulting to the first managed project.
func Manager(managed []models.Project, src listing.TaskSource, companyID, selectedID int64, now time.Time) ManagerSummary {
	out := ManagerSummary{
		Projects:          []models.Project{},
		TaskStatus:        newSeries("Done", "Ongoing", "Pending"),
		OngoingByPriority: newSeries("High", "Medium", "Low"),
		RecentTasks:       []listing.TaskRow{},
	}

	ids := make(map[int64]struct{})
	for _, p := range managed {
		if p.CompanyID != companyID {
			continue
		}
		out.Projects = append(out.Projects, p)
		ids[p.ProjectID] = struct{}{}
	}
	for i := range out.Projects {
		if selectedID == 0 || out.Projects[i].ProjectID == selectedID {
			out.Selected = &out.Projects[i]
			break
		}
	}

	cutoff := now.Add(-ManagerRecentWindow)
	for _, t := range src.Tasks {
		if t.CompanyID != companyID {
			continue
		}
		if _, ok := ids[t.ProjectID]; !ok {
			continue
		}
		if out.Selected != nil && t.ProjectID == out.Selected.ProjectID {
			bucket := managerBucket(t.Status)
			out.TaskStatus.add(bucket)
			if bucket == "Ongoing" {
				out.OngoingByPriority.add(t.Priority)
			}
		}
		if !t.CreatedOn.IsZero() && t.CreatedOn.After(cutoff) {
			out.RecentTasks = append(out.RecentTasks, listing.ResolveTask(src, companyID, t))
		}
	}
	return out
}

// EmployeeSummary feeds the employee home screen.
type EmployeeSummary struct {
	TaskStatus   Series            `json:"taskStatus"`
	TaskPriority Series            `json:"taskPriority"`
	RecentTasks  []listing.TaskRow `json:"recentTasks"`
}

// Employee builds the dashboard of one employee from the tasks assigned to them.
func Employee(src listing.TaskSource, companyID, empID int64) EmployeeSummary {
	out := EmployeeSummary{
		TaskStatus:   newSeries("Ongoing", "Completed", "Pending"),
		TaskPriority: newSeries("High", "Medium", "Low"),
		RecentTasks:  []listing.TaskRow{},
	}
	for _, t := range src.Tasks {
		if t.CompanyID != companyID || t.Assignee() != empID {
			continue
		}
		switch t.Status.Class() {
		case models.ClassActive:
			out.TaskStatus.add("Ongoing")
		case models.ClassFinished:
			out.TaskStatus.add("Completed")
		case models.ClassPending:
			out.TaskStatus.add("Pending")
		}
		out.TaskPriority.add(t.Priority)
		if len(out.RecentTasks) < EmployeeRecentCount {
			out.RecentTasks = append(out.RecentTasks, listing.ResolveTask(src, companyID, t))
		}
	}
	return out
}
