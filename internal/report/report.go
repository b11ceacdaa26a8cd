// Package report renders the time-log report as an xlsx workbook.
package report

import (
	"errors"
	"fmt"
	"io"

	"worknest-console/internal/listing"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Report"
	FileName    = "Task_TimeLog_Report.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("no rows to export")

var columns = []struct {
	header string
	width  float64
	value  func(listing.TimeLogRow) interface{}
}{
	{"Task Name", 32, func(r listing.TimeLogRow) interface{} { return r.TaskName }},
	{"Employee", 24, func(r listing.TimeLogRow) interface{} { return r.EmployeeName }},
	{"Date", 14, func(r listing.TimeLogRow) interface{} { return r.Date.String() }},
	{"Time Spent", 12, func(r listing.TimeLogRow) interface{} { return r.TimeSpent }},
	{"Description", 48, func(r listing.TimeLogRow) interface{} { return r.Description }},
	{"Expected Time (hrs)", 20, func(r listing.TimeLogRow) interface{} { return r.ExpectedHours }},
}

// Build lays the rows out on a single "Report" sheet under a bold header row.
func Build(rows []listing.TimeLogRow) (*excelize.File, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, col.header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, header); err != nil {
			return nil, err
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, name, name, col.width); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		for i, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(SheetName, cell, col.value(row)); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, rows []listing.TimeLogRow) error {
	f, err := Build(rows)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}
