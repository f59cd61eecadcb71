// Package report exports project lists as spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/xuri/excelize/v2"
)

const (
	ProjectsSheet   = "Projects"
	MilestonesSheet = "Milestones"

	// ContentType is the MIME type of the workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var projectHeaders = []string{
	"ID", "Name", "Location", "County", "Capacity", "Status", "Progress",
	"Start Date", "Target Completion", "Actual Completion",
	"Client", "Project Manager", "Budget", "Milestones", "Open Risks",
}

var milestoneHeaders = []string{
	"Project ID", "Project", "Milestone", "Status", "Due Date", "Completed Date",
}

// Workbook builds a workbook with one row per project and one row per milestone.
func Workbook(projects []*models.Project) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ProjectsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(MilestonesSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := writeRow(f, ProjectsSheet, 1, toRow(projectHeaders)); err != nil {
		return nil, err
	}
	if err := writeRow(f, MilestonesSheet, 1, toRow(milestoneHeaders)); err != nil {
		return nil, err
	}
	f.SetRowStyle(ProjectsSheet, 1, 1, headerStyle)
	f.SetRowStyle(MilestonesSheet, 1, 1, headerStyle)

	milestoneRow := 2
	for i, p := range projects {
		row := []any{
			p.ID, p.Name, p.Location, p.County, p.Capacity, string(p.Status), p.Progress,
			string(p.StartDate), string(p.TargetCompletionDate), string(p.ActualCompletionDate),
			p.ClientName, p.ProjectManager, p.Budget, len(p.Milestones), openRisks(p),
		}
		if err := writeRow(f, ProjectsSheet, i+2, row); err != nil {
			return nil, err
		}

		for _, m := range p.Milestones {
			row := []any{p.ID, p.Name, m.Title, string(m.Status), string(m.DueDate), string(m.CompletedDate)}
			if err := writeRow(f, MilestonesSheet, milestoneRow, row); err != nil {
				return nil, err
			}
			milestoneRow++
		}
	}

	f.SetColWidth(ProjectsSheet, "A", "A", 20)
	f.SetColWidth(ProjectsSheet, "B", "C", 30)
	f.SetColWidth(ProjectsSheet, "D", "O", 15)
	f.SetColWidth(MilestonesSheet, "A", "C", 28)
	f.SetColWidth(MilestonesSheet, "D", "F", 15)
	return f, nil
}

// Write renders the workbook for projects to w.
func Write(w io.Writer, projects []*models.Project) error {
	f, err := Workbook(projects)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toRow(headers []string) []any {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return row
}

func openRisks(p *models.Project) int {
	n := 0
	for _, r := range p.Risks {
		if r.Status == models.RiskOpen {
			n++
		}
	}
	return n
}
