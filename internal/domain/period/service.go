package period

import (
	"context"
	"time"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Period, error) {
	return s.Store.List(ctx, filter)
}

func (s *Service) Find(ctx context.Context, id string) (Period, error) {
	return s.Store.Find(ctx, id)
}

// ValidateNoOverlap fails with *OverlapError when any active period's inclusive
// date range intersects [start, end]. excludeID skips the period being edited.
func (s *Service) ValidateNoOverlap(ctx context.Context, start, end time.Time, excludeID string) error {
	conflictID, found, err := s.Store.FindOverlapping(ctx, start, end, excludeID)
	if err != nil {
		return err
	}
	if found {
		return &OverlapError{ConflictID: conflictID, Start: start, End: end}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, name, description string, start, end time.Time, createdBy string) (Period, error) {
	if err := s.ValidateNoOverlap(ctx, start, end, ""); err != nil {
		return Period{}, err
	}
	return s.Store.Create(ctx, name, description, start, end, createdBy)
}

func (s *Service) Update(ctx context.Context, id, name, description string, start, end time.Time, isActive bool) (bool, error) {
	if isActive {
		if err := s.ValidateNoOverlap(ctx, start, end, id); err != nil {
			return false, err
		}
	}
	return s.Store.Update(ctx, id, name, description, start, end, isActive)
}

// Delete refuses to remove a period that any evaluation record references.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	count, err := s.Store.EvaluationCount(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, ErrHasEvaluations
	}
	return s.Store.Delete(ctx, id)
}

// IsActive reports whether the period accepts new records and submissions today.
func (s *Service) IsActive(ctx context.Context, id string) (bool, error) {
	p, err := s.Store.Find(ctx, id)
	if err != nil {
		return false, err
	}
	return IsOpen(p.IsActive, p.StartDate, p.EndDate, time.Now().UTC()), nil
}

func (s *Service) ActivePeriods(ctx context.Context) ([]Period, error) {
	return s.Store.ActivePeriods(ctx, time.Now().UTC())
}

func (s *Service) Statistics(ctx context.Context, id string) (Statistics, error) {
	return s.Store.Statistics(ctx, id)
}
