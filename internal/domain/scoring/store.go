package scoring

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// TopicInputs loads every topic of a period together with the user's
// committee-scored records. Only records that reached evaluated or approved
// feed the engine; topics without any land in the result with an empty
// criteria set.
func (s *Store) TopicInputs(ctx context.Context, userID, periodID string) ([]TopicInput, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.topic_name, t.weight_percentage,
           c.id, c.criteria_name, c.weight_score, ue.committee_score
    FROM evaluation_topics t
    LEFT JOIN evaluation_criteria c ON c.topic_id = t.id
    LEFT JOIN user_evaluations ue
      ON ue.criteria_id = c.id
     AND ue.user_id = $1
     AND ue.period_id = $2
     AND ue.status IN ('evaluated', 'approved')
     AND ue.committee_score IS NOT NULL
    WHERE t.period_id = $2
    ORDER BY t.sort_order, t.id, c.sort_order, c.id
  `, userID, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		topics []TopicInput
		index  = map[string]int{}
	)
	for rows.Next() {
		var (
			topicID, topicName string
			topicWeight        float64
			criteriaID         *string
			criteriaName       *string
			criteriaWeight     *float64
			score              *float64
		)
		if err := rows.Scan(&topicID, &topicName, &topicWeight,
			&criteriaID, &criteriaName, &criteriaWeight, &score); err != nil {
			return nil, err
		}

		i, ok := index[topicID]
		if !ok {
			i = len(topics)
			index[topicID] = i
			topics = append(topics, TopicInput{
				TopicID:          topicID,
				TopicName:        topicName,
				WeightPercentage: topicWeight,
			})
		}
		if criteriaID == nil || score == nil {
			continue
		}
		topics[i].Criteria = append(topics[i].Criteria, ScoredCriterion{
			CriteriaID:   *criteriaID,
			CriteriaName: *criteriaName,
			Weight:       *criteriaWeight,
			Score:        *score,
		})
	}
	return topics, rows.Err()
}
