package reports

import (
	"context"
	"sort"
	"time"

	"appraisal/internal/domain/evaluation"
	"appraisal/internal/domain/scoring"
)

type Service struct {
	Store       *Store
	Evaluations *evaluation.Service
	Scoring     *scoring.Service
}

func NewService(store *Store, evaluations *evaluation.Service, scorer *scoring.Service) *Service {
	return &Service{Store: store, Evaluations: evaluations, Scoring: scorer}
}

// UserReport assembles the individual result for one user in one period.
func (s *Service) UserReport(ctx context.Context, userID, periodID string) (UserReport, error) {
	subject, err := s.Store.Subject(ctx, userID)
	if err != nil {
		return UserReport{}, err
	}
	periodName, err := s.Store.PeriodName(ctx, periodID)
	if err != nil {
		return UserReport{}, err
	}
	records, err := s.Evaluations.ListByUserAndPeriod(ctx, userID, periodID)
	if err != nil {
		return UserReport{}, err
	}
	score, err := s.Scoring.TotalScore(ctx, userID, periodID)
	if err != nil {
		return UserReport{}, err
	}

	return UserReport{
		Subject:     subject,
		PeriodID:    periodID,
		PeriodName:  periodName,
		GeneratedAt: time.Now().UTC(),
		Records:     records,
		Score:       score,
	}, nil
}

// PeriodReport assembles the HR-wide view: every participant's total, the
// grade distribution, and per-department averages.
func (s *Service) PeriodReport(ctx context.Context, periodID string) (PeriodReport, error) {
	periodName, err := s.Store.PeriodName(ctx, periodID)
	if err != nil {
		return PeriodReport{}, err
	}
	subjects, err := s.Store.Participants(ctx, periodID)
	if err != nil {
		return PeriodReport{}, err
	}

	report := PeriodReport{
		PeriodID:          periodID,
		PeriodName:        periodName,
		GeneratedAt:       time.Now().UTC(),
		GradeDistribution: map[string]int{},
	}

	type deptAgg struct {
		count int
		sum   float64
	}
	depts := map[string]*deptAgg{}

	var sum float64
	for _, sub := range subjects {
		score, err := s.Scoring.TotalScore(ctx, sub.UserID, periodID)
		if err != nil {
			return PeriodReport{}, err
		}
		report.Participants = append(report.Participants, ParticipantResult{
			Subject:    sub,
			TotalScore: score.TotalScore,
			Percentage: score.Percentage,
			Grade:      score.Grade,
		})
		report.GradeDistribution[score.Grade]++
		sum += score.TotalScore

		if sub.Department != "" {
			agg, ok := depts[sub.Department]
			if !ok {
				agg = &deptAgg{}
				depts[sub.Department] = agg
			}
			agg.count++
			agg.sum += score.TotalScore
		}
	}

	if len(report.Participants) > 0 {
		report.AverageScore = sum / float64(len(report.Participants))
	}
	for dept, agg := range depts {
		report.DepartmentAverages = append(report.DepartmentAverages, DepartmentAverage{
			Department:   dept,
			Participants: agg.count,
			AverageScore: agg.sum / float64(agg.count),
		})
	}
	sort.Slice(report.DepartmentAverages, func(i, j int) bool {
		return report.DepartmentAverages[i].Department < report.DepartmentAverages[j].Department
	})

	return report, nil
}
