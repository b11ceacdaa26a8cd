package models

// TaskStatus is a task's free-form status. The known values are compared
// case-sensitively; anything else is tolerated and classified as unknown.
type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskOngoing    TaskStatus = "Ongoing"
	TaskCompleted  TaskStatus = "Completed"
	TaskDone       TaskStatus = "Done"
)

// StatusClass groups synonymous task statuses.
type StatusClass int

const (
	ClassUnknown StatusClass = iota
	ClassPending
	ClassActive
	ClassFinished
)

// Class maps a status onto its logical state. "In Progress" and "Ongoing" are
// both active; "Completed" and "Done" are both finished.
func (s TaskStatus) Class() StatusClass {
	switch s {
	case TaskPending:
		return ClassPending
	case TaskInProgress, TaskOngoing:
		return ClassActive
	case TaskCompleted, TaskDone:
		return ClassFinished
	default:
		return ClassUnknown
	}
}

// RequiresTimeLog reports whether moving a task from one status to another
// must be accompanied by a time log entry.
func RequiresTimeLog(from, to TaskStatus) bool {
	switch from.Class() {
	case ClassPending:
		return to.Class() == ClassActive || to.Class() == ClassFinished
	case ClassActive:
		return to.Class() == ClassFinished
	default:
		return false
	}
}

// Task is a unit of assigned work inside a project. Served in PascalCase.
type Task struct {
	TaskID       int64      `json:"TaskId"`
	Name         string     `json:"Name"`
	ProjectID    int64      `json:"ProjectId"`
	AssignedTo   *int64     `json:"AssignedTo"`
	DocumentPath string     `json:"DocumentPath,omitempty"`
	DocumentURL  string     `json:"DocumentUrl,omitempty"`
	DocumentName string     `json:"DocumentName,omitempty"`
	Deadline     Timestamp  `json:"Deadline"`
	Priority     string     `json:"Priority"`
	Status       TaskStatus `json:"Status"`
	ExpectedHrs  *Hours     `json:"ExptedHours,omitempty"`
	CompanyID    int64      `json:"CompanyId"`
	Description  string     `json:"Description,omitempty"`
	IsActive     bool       `json:"IsActive"`
	CreatedOn    Timestamp  `json:"CreatedOn"`
	CreatedBy    int64      `json:"CreatedBy"`
	UpdatedOn    *Timestamp `json:"UpdatedOn,omitempty"`
	UpdatedBy    *int64     `json:"UpdatedBy,omitempty"`
	DeletedOn    *Timestamp `json:"DeletedOn,omitempty"`
	DeletedBy    *int64     `json:"DeletedBy,omitempty"`
}

// Assignee returns the assigned employee id, or 0 when unassigned.
func (t Task) Assignee() int64 {
	if t.AssignedTo == nil {
		return 0
	}
	return *t.AssignedTo
}

// Attachment is an uploaded document reference.
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Name         string     `json:"Name"`
	ProjectID    int64      `json:"ProjectId"`
	AssignedTo   *int64     `json:"AssignedTo,omitempty"`
	DocumentPath string     `json:"DocumentPath,omitempty"`
	DocumentURL  string     `json:"DocumentUrl,omitempty"`
	DocumentName string     `json:"DocumentName,omitempty"`
	Deadline     *Timestamp `json:"Deadline,omitempty"`
	Priority     string     `json:"Priority,omitempty"`
	Status       TaskStatus `json:"Status,omitempty"`
	ExpectedHrs  *Hours     `json:"ExptedHours,omitempty"`
	CreatedBy    int64      `json:"CreatedBy"`
	CompanyID    int64      `json:"CompanyId"`
	Description  string     `json:"Description,omitempty"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Only changed fields are set.
type UpdateTaskRequest struct {
	Name         *string     `json:"Name,omitempty"`
	ProjectID    *int64      `json:"ProjectId,omitempty"`
	AssignedTo   *int64      `json:"AssignedTo,omitempty"`
	DocumentPath *string     `json:"DocumentPath,omitempty"`
	DocumentURL  *string     `json:"DocumentUrl,omitempty"`
	DocumentName *string     `json:"DocumentName,omitempty"`
	Deadline     *Timestamp  `json:"Deadline,omitempty"`
	Priority     *string     `json:"Priority,omitempty"`
	Status       *TaskStatus `json:"Status,omitempty"`
	ExpectedHrs  *Hours      `json:"ExptedHours,omitempty"`
	Description  *string     `json:"Description,omitempty"`
	UpdatedBy    int64       `json:"UpdatedBy"`
}
