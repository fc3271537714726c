package evaluation

import (
	"context"
	"errors"

	"appraisal/internal/domain/committee"
)

// PeriodGate reports whether a period is currently open for writes.
type PeriodGate interface {
	IsActive(ctx context.Context, id string) (bool, error)
}

// AssignmentDirectory answers whether a committee member may score an
// evaluatee in a period.
type AssignmentDirectory interface {
	Permission(ctx context.Context, committeeID, evaluateeID, periodID string) (string, error)
}

type Service struct {
	Store       *Store
	Gate        PeriodGate
	Assignments AssignmentDirectory
}

func NewService(store *Store, gate PeriodGate, assignments AssignmentDirectory) *Service {
	return &Service{Store: store, Gate: gate, Assignments: assignments}
}

// SaveSelf stores or updates an evaluatee's draft answer for one criterion.
// Writes are refused outside the period's open window and on records that
// have already been submitted.
func (s *Service) SaveSelf(ctx context.Context, userID, criteriaID, periodID string, sel SelfSelection) (Record, error) {
	if err := ValidateScore(sel.Score); err != nil {
		return Record{}, err
	}
	if err := s.requireOpen(ctx, periodID); err != nil {
		return Record{}, err
	}

	id, err := s.Store.SaveSelf(ctx, userID, criteriaID, periodID, sel)
	if err != nil {
		return Record{}, err
	}
	return s.Store.Find(ctx, id)
}

// Submit hands a user's draft set over to the committee. A zero count is not
// an error; the submit gate lives in Status and the transition itself just
// moves whatever is still in draft.
func (s *Service) Submit(ctx context.Context, userID, periodID string) (int64, error) {
	if err := s.requireOpen(ctx, periodID); err != nil {
		return 0, err
	}
	return s.Store.Submit(ctx, userID, periodID)
}

// Evaluate records a committee member's score on a submitted record after
// verifying the member is actually assigned to the evaluatee.
func (s *Service) Evaluate(ctx context.Context, recordID, scorerID string, sel CommitteeSelection) (Record, error) {
	if err := ValidateScore(sel.Score); err != nil {
		return Record{}, err
	}

	rec, err := s.Store.Find(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	if _, err := s.Assignments.Permission(ctx, scorerID, rec.UserID, rec.PeriodID); err != nil {
		if errors.Is(err, committee.ErrNotAssigned) {
			return Record{}, ErrNotAssigned
		}
		return Record{}, err
	}

	if err := s.Store.Evaluate(ctx, recordID, scorerID, sel); err != nil {
		return Record{}, err
	}
	return s.Store.Find(ctx, recordID)
}

// Approve finalizes a batch of evaluated records. Records in other states are
// skipped; the count reflects only the rows that actually transitioned.
func (s *Service) Approve(ctx context.Context, recordIDs []string, approvedBy string) (int64, error) {
	if len(recordIDs) == 0 {
		return 0, nil
	}
	return s.Store.Approve(ctx, recordIDs, approvedBy)
}

// Status reports a user's progress through a period.
func (s *Service) Status(ctx context.Context, userID, periodID string) (Status, error) {
	total, draft, submitted, evaluated, approved, err := s.Store.StatusCounts(ctx, userID, periodID)
	if err != nil {
		return Status{}, err
	}
	return BuildStatus(total, draft, submitted, evaluated, approved), nil
}

func (s *Service) ListByUserAndPeriod(ctx context.Context, userID, periodID string) ([]Record, error) {
	return s.Store.ListByUserAndPeriod(ctx, userID, periodID)
}

func (s *Service) Find(ctx context.Context, id string) (Record, error) {
	return s.Store.Find(ctx, id)
}

// Worklist lists the evaluatees a committee member still has to score.
func (s *Service) Worklist(ctx context.Context, committeeID, periodID string) ([]WorklistEntry, error) {
	return s.Store.Worklist(ctx, committeeID, periodID)
}

func (s *Service) PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error) {
	return s.Store.PeriodSummary(ctx, periodID)
}

func (s *Service) requireOpen(ctx context.Context, periodID string) error {
	open, err := s.Gate.IsActive(ctx, periodID)
	if err != nil {
		return err
	}
	if !open {
		return ErrPeriodClosed
	}
	return nil
}
