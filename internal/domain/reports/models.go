package reports

import (
	"time"

	"appraisal/internal/domain/evaluation"
	"appraisal/internal/domain/scoring"
)

// Subject identifies who a report is about.
type Subject struct {
	UserID     string `json:"userId"`
	FullName   string `json:"fullName"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

// UserReport is the full individual result for one period: every record with
// its rubric context plus the weighted roll-up.
type UserReport struct {
	Subject     Subject             `json:"user"`
	PeriodID    string              `json:"periodId"`
	PeriodName  string              `json:"periodName"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Records     []evaluation.Record `json:"records"`
	Score       scoring.TotalScore  `json:"score"`
}

// ParticipantResult is one row of a period report.
type ParticipantResult struct {
	Subject    Subject `json:"user"`
	TotalScore float64 `json:"totalScore"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

// DepartmentAverage aggregates participant totals per department.
type DepartmentAverage struct {
	Department   string  `json:"department"`
	Participants int     `json:"participants"`
	AverageScore float64 `json:"averageScore"`
}

// PeriodReport is the HR-wide view of a period: per-participant totals, the
// grade distribution, and department averages.
type PeriodReport struct {
	PeriodID           string              `json:"periodId"`
	PeriodName         string              `json:"periodName"`
	GeneratedAt        time.Time           `json:"generatedAt"`
	Participants       []ParticipantResult `json:"participants"`
	GradeDistribution  map[string]int      `json:"gradeDistribution"`
	DepartmentAverages []DepartmentAverage `json:"departmentAverages"`
	AverageScore       float64             `json:"averageScore"`
}
