package models

import "fmt"

// TimeLog records time an employee spent on a task on a given day.
type TimeLog struct {
	LogID        int64      `json:"LogId"`
	EmpID        int64      `json:"EmpId"`
	TaskID       int64      `json:"TaskId"`
	Date         Date       `json:"Date"`
	HoursSpent   int        `json:"HoursSpent"`
	MinutesSpent int        `json:"MinutesSpent"`
	Description  string     `json:"Description,omitempty"`
	CompanyID    int64      `json:"CompanyId"`
	CreatedBy    int64      `json:"CreatedBy"`
	CreatedOn    *Timestamp `json:"CreatedOn,omitempty"`
	IsActive     bool       `json:"IsActive"`
	DeletedOn    *Timestamp `json:"DeletedOn,omitempty"`
	DeletedBy    *int64     `json:"DeletedBy,omitempty"`
}

// Spent formats the logged duration as "HHh MMm". Minutes beyond 59 roll over.
func (l TimeLog) Spent() string {
	total := l.HoursSpent*60 + l.MinutesSpent
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02dh %02dm", total/60, total%60)
}

// CreateTimeLogRequest is the body of POST /logtimes.
type CreateTimeLogRequest struct {
	EmpID        int64  `json:"EmpId"`
	TaskID       int64  `json:"TaskId"`
	Date         Date   `json:"Date"`
	CompanyID    int64  `json:"CompanyId"`
	Description  string `json:"Description,omitempty"`
	MinutesSpent int    `json:"MinutesSpent"`
	HoursSpent   int    `json:"HoursSpent"`
	CreatedBy    int64  `json:"CreatedBy"`
}

// UpdateTimeLogRequest is the body of PUT /logtimes/{id}.
type UpdateTimeLogRequest struct {
	EmpID        *int64  `json:"EmpId,omitempty"`
	TaskID       *int64  `json:"TaskId,omitempty"`
	Date         *Date   `json:"Date,omitempty"`
	Description  *string `json:"Description,omitempty"`
	MinutesSpent *int    `json:"MinutesSpent,omitempty"`
	HoursSpent   *int    `json:"HoursSpent,omitempty"`
	UpdatedBy    int64   `json:"UpdatedBy"`
}
