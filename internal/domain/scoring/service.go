package scoring

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// TotalScore computes the weighted roll-up for one user in one period. The
// engine reads committed records only and never writes, so repeated and
// concurrent calls are safe.
func (s *Service) TotalScore(ctx context.Context, userID, periodID string) (TotalScore, error) {
	topics, err := s.Store.TopicInputs(ctx, userID, periodID)
	if err != nil {
		return TotalScore{}, err
	}
	return Calculate(topics), nil
}
