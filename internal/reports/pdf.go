package reports

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"appraisal/internal/domain/appraisal"
)

// WriteAppraisalPDF renders one employee's appraisal: a header with
// name, position and approval state, then a goal/task table with
// effective ratings and status.
func WriteAppraisalPDF(w io.Writer, emp appraisal.Employee, year int) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Appraisal")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", emp.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", emp.Position))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Year: %d", year))
	pdf.Ln(7)
	status := "Pending Review"
	if emp.IsFinalApproved {
		status = "Finally Approved"
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", status))
	pdf.Ln(10)

	for _, goal := range emp.Goals {
		if year != 0 && goal.Year != year {
			continue
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Goal: %s (%d%%)", goal.Title, appraisal.EffectiveGoalRating(goal)))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		if len(goal.Tasks) == 0 {
			pdf.Cell(0, 7, "  no tasks")
			pdf.Ln(7)
			continue
		}
		for _, task := range goal.Tasks {
			approved := "pending"
			if task.IsApproved {
				approved = "approved"
			}
			pdf.Cell(0, 7, fmt.Sprintf("  %s - %d days, %s, %d%%, %s",
				task.Name, task.EstimatedDays, task.ExpectedMonth, appraisal.EffectiveTaskRating(task), approved))
			pdf.Ln(7)
		}
		pdf.Ln(2)
	}

	return pdf.Output(w)
}
