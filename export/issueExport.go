// Package export renders issue lists as spreadsheets for administrators.
package export

import (
	"fmt"
	"io"
	"time"

	"urbanreport-be/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Issues"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout  = "2006-01-02"
)

// Columns is the fixed header row of an export.
var Columns = []string{
	"ID", "Title", "Description", "Category", "Status", "Location",
	"Reported By", "Reported Date", "Priority", "Comments", "Likes",
}

// FileName names the export file after the day it was produced.
func FileName(now time.Time) string {
	return fmt.Sprintf("civic_issues_%s.xlsx", now.Format(dateLayout))
}

// WriteXLSX writes one row per issue, in the given order, to w.
func WriteXLSX(w io.Writer, issues []models.Issue) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, issue := range issues {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []any{
			issue.ID,
			issue.Title,
			issue.Description,
			string(issue.Category),
			string(issue.Status),
			issue.Location,
			issue.ReportedBy,
			issue.ReportedAt.Format(dateLayout),
			string(issue.Priority),
			issue.CommentsCount,
			issue.LikesCount,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write issue %s: %w", issue.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
