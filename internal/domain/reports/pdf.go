package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderUserPDF renders an individual report as a PDF document.
func RenderUserPDF(report UserReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Evaluation Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", report.Subject.FullName))
	pdf.Ln(7)
	if report.Subject.Department != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", report.Subject.Department))
		pdf.Ln(7)
	}
	if report.Subject.Position != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", report.Subject.Position))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", report.PeriodName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Topic Scores")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, ts := range report.Score.TopicScores {
		pdf.Cell(0, 7, fmt.Sprintf("%s (weight %.0f%%): average %.2f, weighted %.2f",
			ts.TopicName, ts.WeightPercentage, ts.Average, ts.Weighted))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f / %.1f (%.1f%%)",
		report.Score.TotalScore, report.Score.MaxScore, report.Score.Percentage))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Grade: %s", report.Score.Grade))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
