package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskDecodesCollaboratorShapes(t *testing.T) {
	raw := `{"TaskId":7,"Name":"Wire login","ProjectId":3,"AssignedTo":null,
		"Deadline":"2025-03-01T17:30:00","Priority":"High","Status":"Ongoing",
		"ExptedHours":"12.50","CompanyId":1,"IsActive":true,
		"CreatedOn":"2025-02-20T09:00:00.123000","CreatedBy":2}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	require.Equal(t, int64(7), task.TaskID)
	require.Nil(t, task.AssignedTo)
	require.Equal(t, int64(0), task.Assignee())
	require.True(t, time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC).Equal(task.Deadline.Time))
	require.NotNil(t, task.ExpectedHrs)
	require.InDelta(t, 12.5, float64(*task.ExpectedHrs), 0.0001)
	require.Equal(t, ClassActive, task.Status.Class())
}

func TestHoursAcceptsNumbers(t *testing.T) {
	var h Hours
	require.NoError(t, json.Unmarshal([]byte(`8`), &h))
	require.Equal(t, Hours(8), h)
	require.Error(t, json.Unmarshal([]byte(`"eight"`), &h))
}

func TestTimestampRoundTripsWithoutZone(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	require.Equal(t, `"2025-01-02T10:00:00"`, string(b))

	var zero Timestamp
	b, err = json.Marshal(zero)
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}

func TestDateMarshalsDayOnly(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-04-09T00:00:00"`), &d))
	require.Equal(t, "2025-04-09", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-04-09"`, string(b))
}

func TestParseStatusSet(t *testing.T) {
	set := ParseStatusSet(" In Progress,On Hold,,In Progress ")
	require.Equal(t, StatusSet{"In Progress", "On Hold"}, set)
	require.Equal(t, "In Progress,On Hold", set.String())
	require.True(t, set.Has("on hold"))
	require.False(t, set.Has("Completed"))
	require.Empty(t, ParseStatusSet(""))
}

func TestRequiresTimeLog(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		want     bool
	}{
		{TaskPending, TaskInProgress, true},
		{TaskPending, TaskCompleted, true},
		{TaskPending, TaskOngoing, true},
		{TaskInProgress, TaskCompleted, true},
		{TaskOngoing, TaskDone, true},
		{TaskInProgress, TaskPending, false},
		{TaskCompleted, TaskPending, false},
		{TaskPending, TaskPending, false},
		{"Blocked", TaskCompleted, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RequiresTimeLog(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTimeLogSpent(t *testing.T) {
	require.Equal(t, "02h 05m", TimeLog{HoursSpent: 2, MinutesSpent: 5}.Spent())
	require.Equal(t, "01h 30m", TimeLog{MinutesSpent: 90}.Spent())
	require.Equal(t, "00h 00m", TimeLog{}.Spent())
}

func TestRoleCodes(t *testing.T) {
	require.True(t, RoleAdmin.Known())
	require.Equal(t, "super_admin", RoleSuperAdmin.Name())
	require.False(t, RoleCode(99).Known())
	code, ok := RoleFromName("project_manager")
	require.True(t, ok)
	require.Equal(t, RoleProjectManager, code)
}

func TestAssignmentActive(t *testing.T) {
	ended := NewTimestamp(time.Now())
	require.True(t, ProjectEmployee{}.Active())
	require.False(t, ProjectEmployee{DeletedOn: &ended}.Active())
}
