package committee

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Create(ctx context.Context, committeeID, evaluateeID, periodID, role, assignedBy string) (Assignment, error) {
	if role == "" {
		role = RoleMember
	}
	if !ValidRole(role) {
		return Assignment{}, ErrInvalidRole
	}
	if committeeID == evaluateeID {
		return Assignment{}, ErrSelfAssignment
	}
	return s.Store.Create(ctx, committeeID, evaluateeID, periodID, role, assignedBy)
}

// CreateBulk assigns every committee member to every evaluatee. Self pairs are
// dropped before any insert; duplicates are collected into Skipped so one
// conflicting pair does not abort the batch.
func (s *Service) CreateBulk(ctx context.Context, committeeIDs, evaluateeIDs []string, periodID, assignedBy string) (BulkResult, error) {
	result := BulkResult{
		Created: make([]Assignment, 0),
		Skipped: make([]SkippedPair, 0),
	}
	for _, pair := range ExpandPairs(committeeIDs, evaluateeIDs) {
		assignment, err := s.Store.Create(ctx, pair.CommitteeID, pair.EvaluateeID, periodID, RoleMember, assignedBy)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedPair{Pair: pair, Reason: err.Error()})
			continue
		}
		result.Created = append(result.Created, assignment)
	}
	return result, nil
}

func (s *Service) ListByPeriod(ctx context.Context, periodID string) ([]Assignment, error) {
	return s.Store.ListByPeriod(ctx, periodID)
}

func (s *Service) EvaluateesByCommittee(ctx context.Context, committeeID, periodID string) ([]Assignment, error) {
	return s.Store.EvaluateesByCommittee(ctx, committeeID, periodID)
}

func (s *Service) CommitteesByEvaluatee(ctx context.Context, evaluateeID, periodID string) ([]Assignment, error) {
	return s.Store.CommitteesByEvaluatee(ctx, evaluateeID, periodID)
}

func (s *Service) Find(ctx context.Context, id string) (Assignment, error) {
	return s.Store.Find(ctx, id)
}

func (s *Service) UpdateRole(ctx context.Context, id, role string) (bool, error) {
	if !ValidRole(role) {
		return false, ErrInvalidRole
	}
	return s.Store.UpdateRole(ctx, id, role)
}

// Delete refuses once the assigned committee member has scored the evaluatee.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	count, err := s.Store.ScoredCount(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, ErrHasEvaluations
	}
	return s.Store.Delete(ctx, id)
}

func (s *Service) DeleteByPeriod(ctx context.Context, periodID string) (int64, error) {
	return s.Store.DeleteByPeriod(ctx, periodID)
}

func (s *Service) Statistics(ctx context.Context, periodID string) (Statistics, error) {
	return s.Store.Statistics(ctx, periodID)
}

func (s *Service) Permission(ctx context.Context, committeeID, evaluateeID, periodID string) (string, error) {
	return s.Store.Permission(ctx, committeeID, evaluateeID, periodID)
}
