package models

import "strings"

// ProjectPriority is the urgency of a project.
type ProjectPriority string

const (
	PriorityLow      ProjectPriority = "Low"
	PriorityMedium   ProjectPriority = "Medium"
	PriorityHigh     ProjectPriority = "High"
	PriorityCritical ProjectPriority = "Critical"
)

// ProjectPriorities lists the priority vocabulary in display order.
var ProjectPriorities = []ProjectPriority{PriorityHigh, PriorityMedium, PriorityLow, PriorityCritical}

// Valid reports whether p is in the priority vocabulary.
func (p ProjectPriority) Valid() bool {
	for _, known := range ProjectPriorities {
		if p == known {
			return true
		}
	}
	return false
}

// Project status vocabulary.
const (
	ProjectNotStarted = "Not Started"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
	ProjectOnHold     = "On Hold"
)

// ProjectStatuses lists the project status vocabulary.
var ProjectStatuses = []string{ProjectNotStarted, ProjectInProgress, ProjectCompleted, ProjectOnHold}

// StatusSet is the parsed form of a project's comma-joined status string.
type StatusSet []string

// ParseStatusSet splits a stored status string. Members are trimmed, empty
// members dropped and duplicates removed, keeping first-seen order.
func ParseStatusSet(s string) StatusSet {
	set := StatusSet{}
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		set = append(set, part)
	}
	return set
}

// String joins the set back into its stored form.
func (s StatusSet) String() string {
	return strings.Join(ParseStatusSet(strings.Join(s, ",")), ",")
}

// Has reports whether the set contains status, ignoring case.
func (s StatusSet) Has(status string) bool {
	for _, member := range s {
		if strings.EqualFold(member, strings.TrimSpace(status)) {
			return true
		}
	}
	return false
}

// Project is a unit of work owned by a manager. Served in PascalCase.
type Project struct {
	ProjectID      int64      `json:"ProjectId"`
	Name           string     `json:"Name"`
	StartDate      Timestamp  `json:"StartDate"`
	EndDate        Timestamp  `json:"EndDate"`
	ProjectManager int64      `json:"ProjectManager"`
	Priority       string     `json:"Priority"`
	Status         string     `json:"Status"`
	CompanyID      int64      `json:"CompanyId"`
	Description    string     `json:"Description,omitempty"`
	IsActive       bool       `json:"IsActive"`
	CreatedOn      Timestamp  `json:"CreatedOn"`
	CreatedBy      int64      `json:"CreatedBy"`
	UpdatedOn      *Timestamp `json:"UpdatedOn,omitempty"`
	UpdatedBy      *int64     `json:"UpdatedBy,omitempty"`
	DeletedOn      *Timestamp `json:"DeletedOn,omitempty"`
	DeletedBy      *int64     `json:"DeletedBy,omitempty"`
}

// Statuses parses the project's status string.
func (p Project) Statuses() StatusSet {
	return ParseStatusSet(p.Status)
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Name           string    `json:"Name"`
	StartDate      Timestamp `json:"StartDate"`
	EndDate        Timestamp `json:"EndDate"`
	ProjectManager int64     `json:"ProjectManager"`
	Priority       string    `json:"Priority"`
	Status         string    `json:"Status"`
	CompanyID      int64     `json:"CompanyId"`
	Description    string    `json:"Description,omitempty"`
	IsActive       bool      `json:"IsActive"`
	CreatedBy      int64     `json:"CreatedBy"`
}

// UpdateProjectRequest is the body of PUT /projects/{id}. Only changed fields are set.
type UpdateProjectRequest struct {
	Name           *string    `json:"Name,omitempty"`
	StartDate      *Timestamp `json:"StartDate,omitempty"`
	EndDate        *Timestamp `json:"EndDate,omitempty"`
	ProjectManager *int64     `json:"ProjectManager,omitempty"`
	Priority       *string    `json:"Priority,omitempty"`
	Status         *string    `json:"Status,omitempty"`
	Description    *string    `json:"Description,omitempty"`
	IsActive       *bool      `json:"IsActive,omitempty"`
	UpdatedBy      int64      `json:"UpdatedBy"`
}
