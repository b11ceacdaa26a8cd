package listing

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"worknest-console/internal/models"

	"github.com/stretchr/testify/require"
)

const company = int64(1)

func ptr[T any](v T) *T { return &v }

// twelveTasks builds 12 tasks over 3 projects; tasks 0, 3, 6 and 9 are High.
func twelveTasks() TaskSource {
	src := TaskSource{
		Projects: []models.Project{
			{ProjectID: 1, Name: "Payroll API", ProjectManager: 100, CompanyID: company},
			{ProjectID: 2, Name: "Mobile App", ProjectManager: 101, CompanyID: company},
			{ProjectID: 3, Name: "Data Warehouse", ProjectManager: 100, CompanyID: company},
		},
		Employees: []models.Employee{
			{EmpID: 100, Name: "Asha", CompanyID: company},
			{EmpID: 101, Name: "Ben", CompanyID: company},
			{EmpID: 102, Name: "Chen", CompanyID: company},
		},
	}
	for i := 0; i < 12; i++ {
		priority := "Low"
		if i%3 == 0 {
			priority = "High"
		}
		src.Tasks = append(src.Tasks, models.Task{
			TaskID:     int64(i + 1),
			Name:       fmt.Sprintf("Task %02d", i+1),
			ProjectID:  int64(i%3 + 1),
			AssignedTo: ptr(int64(100 + i%3)),
			Priority:   priority,
			Status:     models.TaskPending,
			CompanyID:  company,
		})
	}
	return src
}

func TestTasks_FirstPageOfTwelve(t *testing.T) {
	page := Tasks(twelveTasks(), company, TaskFilter{}, 1, 5)
	require.Len(t, page.Data, 5)
	require.Equal(t, 12, page.Total)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, "Task 01", page.Data[0].Name)
	require.Equal(t, "Payroll API", page.Data[0].ProjectName)
	require.Equal(t, "Asha", page.Data[0].AssignedToName)
}

func TestTasks_LastPartialPage(t *testing.T) {
	page := Tasks(twelveTasks(), company, TaskFilter{}, 3, 5)
	require.Len(t, page.Data, 2)
	require.Equal(t, "Task 11", page.Data[0].Name)
}

func TestTasks_PriorityFilterCountsAcrossPages(t *testing.T) {
	for _, limit := range []int{1, 2, 5, 10} {
		page := Tasks(twelveTasks(), company, TaskFilter{Priority: "High"}, 1, limit)
		require.Equal(t, 4, page.Total, "limit %d", limit)
		for _, row := range page.Data {
			require.Equal(t, "High", row.Priority)
		}
	}
}

func TestTasks_FiltersAreConjunctive(t *testing.T) {
	src := twelveTasks()
	f := TaskFilter{ProjectName: "payroll", Priority: "high", ManagerID: 100}
	page := Tasks(src, company, f, 1, 10)

	require.Equal(t, 4, page.Total) // tasks 1, 4, 7 and 10
	for _, row := range page.Data {
		require.True(t, strings.Contains(strings.ToLower(row.ProjectName), "payroll"))
		require.Equal(t, "High", row.Priority)
		require.Equal(t, int64(1), row.ProjectID)
	}

	f.AssignedTo = 101
	require.Equal(t, 0, Tasks(src, company, f, 1, 10).Total)
}

func TestTasks_ManagerScopesToOwnProjects(t *testing.T) {
	page := Tasks(twelveTasks(), company, TaskFilter{ManagerID: 101}, 1, 10)
	require.Equal(t, 4, page.Total)
	for _, row := range page.Data {
		require.Equal(t, "Mobile App", row.ProjectName)
	}
}

func TestTasks_UnmatchedAssigneeIsUnassigned(t *testing.T) {
	src := twelveTasks()
	src.Tasks = []models.Task{
		{TaskID: 1, Name: "Orphan", ProjectID: 77, AssignedTo: ptr(int64(999)), CompanyID: company},
		{TaskID: 2, Name: "Nobody", ProjectID: 1, CompanyID: company},
	}
	page := Tasks(src, company, TaskFilter{}, 1, 5)
	require.Equal(t, Unassigned, page.Data[0].AssignedToName)
	require.Equal(t, UnknownName, page.Data[0].ProjectName)
	require.Equal(t, Unassigned, page.Data[1].AssignedToName)
}

func TestTasks_CompanyScoping(t *testing.T) {
	src := twelveTasks()
	src.Tasks = append(src.Tasks, models.Task{TaskID: 50, Name: "Foreign", ProjectID: 1, CompanyID: 2})
	src.Employees = append(src.Employees, models.Employee{EmpID: 500, Name: "Outsider", CompanyID: 2})
	src.Tasks[0].AssignedTo = ptr(int64(500))

	page := Tasks(src, company, TaskFilter{}, 1, 20)
	require.Equal(t, 12, page.Total)
	for _, row := range page.Data {
		require.Equal(t, company, row.CompanyID)
		require.NotEqual(t, "Outsider", row.AssignedToName)
	}
}

func TestTasks_Idempotent(t *testing.T) {
	src := twelveTasks()
	f := TaskFilter{TaskName: "task 1"}
	first := Tasks(src, company, f, 1, 2)
	second := Tasks(src, company, f, 1, 2)
	require.Equal(t, first, second)
	require.Equal(t, 3, first.Total) // 10, 11 and 12
}

func TestTasks_EmptyAfterDeletion(t *testing.T) {
	src := twelveTasks()
	src.Tasks = nil
	page := Tasks(src, company, TaskFilter{}, 1, 5)
	require.Equal(t, 0, page.Total)
	require.Equal(t, 0, page.TotalPages)
	require.NotNil(t, page.Data)
	require.Empty(t, page.Data)
}

func TestPaginate_OutOfRangeAndClamp(t *testing.T) {
	page := Tasks(twelveTasks(), company, TaskFilter{}, 9, 5)
	require.Empty(t, page.Data)
	require.Equal(t, 12, page.Total)
	require.Equal(t, 3, Clamp(9, page.TotalPages))
	require.Equal(t, 1, Clamp(0, 3))
	require.Equal(t, 1, Clamp(4, 0))
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 5))
	require.Equal(t, 1, TotalPages(5, 5))
	require.Equal(t, 2, TotalPages(6, 5))
	require.Equal(t, 3, TotalPages(12, 5))
}

func TestProjects_StatusSetAndManager(t *testing.T) {
	projects := []models.Project{
		{ProjectID: 1, Name: "Alpha", Status: "In Progress,On Hold", Priority: "High", ProjectManager: 100, CompanyID: company},
		{ProjectID: 2, Name: "Beta", Status: "Completed", Priority: "Low", ProjectManager: 404, CompanyID: company},
		{ProjectID: 3, Name: "Gamma", Status: "On Hold", Priority: "High", ProjectManager: 100, CompanyID: 9},
	}
	employees := []models.Employee{{EmpID: 100, Name: "Asha", CompanyID: company}}

	page := Projects(projects, employees, company, ProjectFilter{Status: "On Hold"}, 1, 5)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Asha", page.Data[0].ManagerName)
	require.Equal(t, models.StatusSet{"In Progress", "On Hold"}, page.Data[0].Statuses)

	page = Projects(projects, employees, company, ProjectFilter{}, 1, 5)
	require.Equal(t, 2, page.Total)
	require.Equal(t, UnknownName, page.Data[1].ManagerName)
}

func TestEmployees_SearchAndRole(t *testing.T) {
	employees := []models.Employee{
		{EmpID: 1, Name: "Priya Nair", Email: "priya@acme.io", RoleID: 10, CompanyID: company},
		{EmpID: 2, Name: "Omar", Email: "omar@acme.io", RoleID: 11, CompanyID: company},
		{EmpID: 3, Name: "Lena", Email: "lena@acme.io", RoleID: 77, CompanyID: company},
	}
	roles := []models.Role{{RoleID: 10, Role: "Employee"}, {RoleID: 11, Role: "Project Manager"}}

	page := Employees(employees, roles, company, EmployeeFilter{Search: "NAIR"}, 1, 5)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Employee", page.Data[0].RoleName)

	page = Employees(employees, roles, company, EmployeeFilter{RoleID: 77}, 1, 5)
	require.Equal(t, UnknownRole, page.Data[0].RoleName)
}

func TestEmployeesFromServer_KeepsServerTotal(t *testing.T) {
	data := []models.Employee{{EmpID: 1, Name: "A", CompanyID: company, RoleID: 10}}
	page := EmployeesFromServer(data, 11, 2, 5, nil, company)
	require.Equal(t, 11, page.Total)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 2, page.Page)
	require.Equal(t, UnknownRole, page.Data[0].RoleName)
}

func TestTimeLogs_RangeAndSentinels(t *testing.T) {
	day := func(d int) models.Date { return models.NewDate(time.Date(2025, 5, d, 0, 0, 0, 0, time.UTC)) }
	src := TimeLogSource{
		Logs: []models.TimeLog{
			{LogID: 1, EmpID: 100, TaskID: 1, Date: day(1), HoursSpent: 2, MinutesSpent: 5, CompanyID: company},
			{LogID: 2, EmpID: 100, TaskID: 2, Date: day(5), HoursSpent: 1, CompanyID: company},
			{LogID: 3, EmpID: 999, TaskID: 404, Date: day(10), MinutesSpent: 45, CompanyID: company},
		},
		Tasks: []models.Task{
			{TaskID: 1, Name: "Design schema", CompanyID: company, ExpectedHrs: ptr(models.Hours(6.5))},
			{TaskID: 2, Name: "Write tests", CompanyID: company},
		},
		Employees: []models.Employee{{EmpID: 100, Name: "Asha", CompanyID: company}},
	}

	page := TimeLogs(src, company, TimeLogFilter{From: day(1), To: day(5)}, 1, 10)
	require.Equal(t, 2, page.Total)
	require.Equal(t, "02h 05m", page.Data[0].TimeSpent)
	require.Equal(t, "6.5", page.Data[0].ExpectedHours)
	require.Equal(t, "-", page.Data[1].ExpectedHours)

	rows := AllTimeLogs(src, company, TimeLogFilter{})
	require.Len(t, rows, 3)
	require.Equal(t, UnknownName, rows[2].EmployeeName)
	require.Equal(t, UnknownTask, rows[2].TaskName)

	rows = AllTimeLogs(src, company, TimeLogFilter{TaskName: "schema"})
	require.Len(t, rows, 1)
}
