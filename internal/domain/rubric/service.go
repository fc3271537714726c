package rubric

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) TopicsByPeriod(ctx context.Context, periodID string) ([]Topic, error) {
	return s.Store.TopicsByPeriod(ctx, periodID)
}

func (s *Service) FindTopic(ctx context.Context, id string) (Topic, error) {
	return s.Store.FindTopic(ctx, id)
}

func (s *Service) CreateTopic(ctx context.Context, periodID, name string, weight float64, sortOrder int) (Topic, error) {
	return s.Store.CreateTopic(ctx, periodID, name, weight, sortOrder)
}

func (s *Service) UpdateTopic(ctx context.Context, id, name string, weight float64, sortOrder int) (bool, error) {
	return s.Store.UpdateTopic(ctx, id, name, weight, sortOrder)
}

// DeleteTopic refuses once any evaluation record references the topic's criteria.
func (s *Service) DeleteTopic(ctx context.Context, id string) (bool, error) {
	count, err := s.Store.TopicEvaluationCount(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, ErrHasEvaluations
	}
	return s.Store.DeleteTopic(ctx, id)
}

func (s *Service) TopicWeightSummary(ctx context.Context, periodID string) (WeightSummary, error) {
	total, count, err := s.Store.TopicWeightTotal(ctx, periodID)
	if err != nil {
		return WeightSummary{}, err
	}
	return BuildWeightSummary(total, count), nil
}

func (s *Service) CriteriaByTopic(ctx context.Context, topicID string) ([]Criterion, error) {
	return s.Store.CriteriaByTopic(ctx, topicID)
}

func (s *Service) FindCriterion(ctx context.Context, id string) (Criterion, error) {
	return s.Store.FindCriterion(ctx, id)
}

// CreateCriterion generates the default option set for binary and scale_1_4
// types when the caller supplies none; custom_options must bring its own.
func (s *Service) CreateCriterion(ctx context.Context, topicID, name string, weight float64, evaluationType string, evidenceRequired bool, evidenceTypes []string, sortOrder int, options []OptionSeed) (Criterion, error) {
	if evaluationType == "" {
		evaluationType = EvaluationTypeScale14
	}
	if !ValidEvaluationType(evaluationType) {
		return Criterion{}, ErrInvalidType
	}
	if len(options) == 0 {
		options = DefaultOptions(evaluationType)
		if options == nil {
			return Criterion{}, ErrOptionsRequired
		}
	}
	return s.Store.CreateCriterion(ctx, topicID, name, weight, evaluationType, evidenceRequired, evidenceTypes, sortOrder, options)
}

func (s *Service) UpdateCriterion(ctx context.Context, id, name string, weight float64, evaluationType string, evidenceRequired bool, evidenceTypes []string, sortOrder int) (bool, error) {
	if !ValidEvaluationType(evaluationType) {
		return false, ErrInvalidType
	}
	return s.Store.UpdateCriterion(ctx, id, name, weight, evaluationType, evidenceRequired, evidenceTypes, sortOrder)
}

func (s *Service) DeleteCriterion(ctx context.Context, id string) (bool, error) {
	count, err := s.Store.CriterionEvaluationCount(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, ErrHasEvaluations
	}
	return s.Store.DeleteCriterion(ctx, id)
}

func (s *Service) CriterionWeightSummary(ctx context.Context, topicID string) (WeightSummary, error) {
	total, count, err := s.Store.CriterionWeightTotal(ctx, topicID)
	if err != nil {
		return WeightSummary{}, err
	}
	return BuildWeightSummary(total, count), nil
}
