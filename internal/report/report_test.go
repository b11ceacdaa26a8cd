package report

import (
	"bytes"
	"testing"
	"time"

	"worknest-console/internal/listing"
	"worknest-console/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite_HeaderAndRows(t *testing.T) {
	rows := []listing.TimeLogRow{
		{
			TimeLog:       models.TimeLog{Date: models.NewDate(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)), Description: "schema work"},
			EmployeeName:  "Asha",
			TaskName:      "Design schema",
			TimeSpent:     "02h 05m",
			ExpectedHours: "6.5",
		},
		{
			EmployeeName:  listing.UnknownName,
			TaskName:      listing.UnknownTask,
			TimeSpent:     "00h 45m",
			ExpectedHours: "-",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())
	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []string{"Task Name", "Employee", "Date", "Time Spent", "Description", "Expected Time (hrs)"}, got[0])
	require.Equal(t, []string{"Design schema", "Asha", "2025-05-02", "02h 05m", "schema work", "6.5"}, got[1])
	require.Equal(t, "-", got[2][5])
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, Write(&buf, nil), ErrNoRows)
	require.Zero(t, buf.Len())
}
