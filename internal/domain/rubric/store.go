package rubric

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) TopicsByPeriod(ctx context.Context, periodID string) ([]Topic, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, period_id, topic_name, weight_percentage, sort_order, created_at
    FROM evaluation_topics
    WHERE period_id = $1
    ORDER BY sort_order ASC, id ASC
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.PeriodID, &t.Name, &t.WeightPercentage, &t.SortOrder, &t.CreatedAt); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *Store) FindTopic(ctx context.Context, id string) (Topic, error) {
	var t Topic
	err := s.DB.QueryRow(ctx, `
    SELECT id, period_id, topic_name, weight_percentage, sort_order, created_at
    FROM evaluation_topics
    WHERE id = $1
  `, id).Scan(&t.ID, &t.PeriodID, &t.Name, &t.WeightPercentage, &t.SortOrder, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Topic{}, ErrTopicNotFound
	}
	if err != nil {
		return Topic{}, err
	}

	criteria, err := s.CriteriaByTopic(ctx, id)
	if err != nil {
		return Topic{}, err
	}
	t.Criteria = criteria
	return t, nil
}

// CreateTopic inserts a topic after validating the period's weight budget.
// The period row is locked for the duration of the transaction so concurrent
// sibling writes serialize on the budget check.
func (s *Store) CreateTopic(ctx context.Context, periodID, name string, weight float64, sortOrder int) (Topic, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Topic{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockPeriod(ctx, tx, periodID); err != nil {
		return Topic{}, err
	}

	var currentTotal float64
	if err := tx.QueryRow(ctx, `
    SELECT COALESCE(SUM(weight_percentage), 0)
    FROM evaluation_topics
    WHERE period_id = $1
  `, periodID).Scan(&currentTotal); err != nil {
		return Topic{}, err
	}
	if err := CheckWeightBudget(currentTotal, weight); err != nil {
		return Topic{}, err
	}

	var t Topic
	if err := tx.QueryRow(ctx, `
    INSERT INTO evaluation_topics (period_id, topic_name, weight_percentage, sort_order)
    VALUES ($1,$2,$3,$4)
    RETURNING id, period_id, topic_name, weight_percentage, sort_order, created_at
  `, periodID, name, weight, sortOrder).Scan(&t.ID, &t.PeriodID, &t.Name, &t.WeightPercentage, &t.SortOrder, &t.CreatedAt); err != nil {
		return Topic{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Topic{}, err
	}
	return t, nil
}

func (s *Store) UpdateTopic(ctx context.Context, id, name string, weight float64, sortOrder int) (bool, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var periodID string
	err = tx.QueryRow(ctx, "SELECT period_id FROM evaluation_topics WHERE id = $1", id).Scan(&periodID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrTopicNotFound
	}
	if err != nil {
		return false, err
	}

	if err := lockPeriod(ctx, tx, periodID); err != nil {
		return false, err
	}

	var otherTotal float64
	if err := tx.QueryRow(ctx, `
    SELECT COALESCE(SUM(weight_percentage), 0)
    FROM evaluation_topics
    WHERE period_id = $1 AND id <> $2
  `, periodID, id).Scan(&otherTotal); err != nil {
		return false, err
	}
	if err := CheckWeightBudget(otherTotal, weight); err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE evaluation_topics
    SET topic_name = $1, weight_percentage = $2, sort_order = $3
    WHERE id = $4
  `, name, weight, sortOrder, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) TopicEvaluationCount(ctx context.Context, id string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM user_evaluations ue
    JOIN evaluation_criteria ec ON ue.criteria_id = ec.id
    WHERE ec.topic_id = $1
  `, id).Scan(&count)
	return count, err
}

func (s *Store) DeleteTopic(ctx context.Context, id string) (bool, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    DELETE FROM evaluation_options
    WHERE criteria_id IN (SELECT id FROM evaluation_criteria WHERE topic_id = $1)
  `, id); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM evaluation_criteria WHERE topic_id = $1", id); err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM evaluation_topics WHERE id = $1", id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) TopicWeightTotal(ctx context.Context, periodID string) (float64, int, error) {
	var total float64
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(weight_percentage), 0), COUNT(1)
    FROM evaluation_topics
    WHERE period_id = $1
  `, periodID).Scan(&total, &count)
	return total, count, err
}

func (s *Store) CriteriaByTopic(ctx context.Context, topicID string) ([]Criterion, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, topic_id, criteria_name, weight_score, evaluation_type, evidence_required, evidence_types, sort_order, created_at
    FROM evaluation_criteria
    WHERE topic_id = $1
    ORDER BY sort_order ASC, id ASC
  `, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var criteria []Criterion
	for rows.Next() {
		c, err := scanCriterion(rows)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range criteria {
		options, err := s.OptionsByCriterion(ctx, criteria[i].ID)
		if err != nil {
			return nil, err
		}
		criteria[i].Options = options
	}
	return criteria, nil
}

func (s *Store) FindCriterion(ctx context.Context, id string) (Criterion, error) {
	c, err := scanCriterion(s.DB.QueryRow(ctx, `
    SELECT id, topic_id, criteria_name, weight_score, evaluation_type, evidence_required, evidence_types, sort_order, created_at
    FROM evaluation_criteria
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Criterion{}, ErrCriterionNotFound
	}
	if err != nil {
		return Criterion{}, err
	}

	options, err := s.OptionsByCriterion(ctx, id)
	if err != nil {
		return Criterion{}, err
	}
	c.Options = options
	return c, nil
}

func (s *Store) OptionsByCriterion(ctx context.Context, criterionID string) ([]Option, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, criteria_id, option_text, option_value, sort_order
    FROM evaluation_options
    WHERE criteria_id = $1
    ORDER BY sort_order ASC, option_value ASC
  `, criterionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.CriterionID, &o.Text, &o.Value, &o.SortOrder); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// CreateCriterion inserts a criterion plus its options after validating the
// topic's criteria weight budget. The topic row serializes sibling writes.
func (s *Store) CreateCriterion(ctx context.Context, topicID, name string, weight float64, evaluationType string, evidenceRequired bool, evidenceTypes []string, sortOrder int, options []OptionSeed) (Criterion, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Criterion{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockTopic(ctx, tx, topicID); err != nil {
		return Criterion{}, err
	}

	var currentTotal float64
	if err := tx.QueryRow(ctx, `
    SELECT COALESCE(SUM(weight_score), 0)
    FROM evaluation_criteria
    WHERE topic_id = $1
  `, topicID).Scan(&currentTotal); err != nil {
		return Criterion{}, err
	}
	if err := CheckWeightBudget(currentTotal, weight); err != nil {
		return Criterion{}, err
	}

	typesJSON, err := marshalEvidenceTypes(evidenceTypes)
	if err != nil {
		return Criterion{}, err
	}

	c, err := scanCriterion(tx.QueryRow(ctx, `
    INSERT INTO evaluation_criteria (topic_id, criteria_name, weight_score, evaluation_type, evidence_required, evidence_types, sort_order)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, topic_id, criteria_name, weight_score, evaluation_type, evidence_required, evidence_types, sort_order, created_at
  `, topicID, name, weight, evaluationType, evidenceRequired, typesJSON, sortOrder))
	if err != nil {
		return Criterion{}, err
	}

	for _, option := range options {
		if _, err := tx.Exec(ctx, `
      INSERT INTO evaluation_options (criteria_id, option_text, option_value, sort_order)
      VALUES ($1,$2,$3,$4)
    `, c.ID, option.Text, option.Value, option.SortOrder); err != nil {
			return Criterion{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Criterion{}, err
	}

	c.Options, err = s.OptionsByCriterion(ctx, c.ID)
	return c, err
}

func (s *Store) UpdateCriterion(ctx context.Context, id, name string, weight float64, evaluationType string, evidenceRequired bool, evidenceTypes []string, sortOrder int) (bool, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var topicID string
	err = tx.QueryRow(ctx, "SELECT topic_id FROM evaluation_criteria WHERE id = $1", id).Scan(&topicID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrCriterionNotFound
	}
	if err != nil {
		return false, err
	}

	if err := lockTopic(ctx, tx, topicID); err != nil {
		return false, err
	}

	var otherTotal float64
	if err := tx.QueryRow(ctx, `
    SELECT COALESCE(SUM(weight_score), 0)
    FROM evaluation_criteria
    WHERE topic_id = $1 AND id <> $2
  `, topicID, id).Scan(&otherTotal); err != nil {
		return false, err
	}
	if err := CheckWeightBudget(otherTotal, weight); err != nil {
		return false, err
	}

	typesJSON, err := marshalEvidenceTypes(evidenceTypes)
	if err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE evaluation_criteria
    SET criteria_name = $1, weight_score = $2, evaluation_type = $3, evidence_required = $4, evidence_types = $5, sort_order = $6
    WHERE id = $7
  `, name, weight, evaluationType, evidenceRequired, typesJSON, sortOrder, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CriterionEvaluationCount(ctx context.Context, id string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM user_evaluations WHERE criteria_id = $1", id).Scan(&count)
	return count, err
}

func (s *Store) DeleteCriterion(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluation_criteria WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CriterionWeightTotal(ctx context.Context, topicID string) (float64, int, error) {
	var total float64
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(weight_score), 0), COUNT(1)
    FROM evaluation_criteria
    WHERE topic_id = $1
  `, topicID).Scan(&total, &count)
	return total, count, err
}

func lockPeriod(ctx context.Context, tx pgx.Tx, periodID string) error {
	var id string
	err := tx.QueryRow(ctx, "SELECT id FROM evaluation_periods WHERE id = $1 FOR UPDATE", periodID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPeriodNotFound
	}
	return err
}

func lockTopic(ctx context.Context, tx pgx.Tx, topicID string) error {
	var id string
	err := tx.QueryRow(ctx, "SELECT id FROM evaluation_topics WHERE id = $1 FOR UPDATE", topicID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTopicNotFound
	}
	return err
}

func scanCriterion(row pgx.Row) (Criterion, error) {
	var c Criterion
	var typesJSON []byte
	if err := row.Scan(&c.ID, &c.TopicID, &c.Name, &c.WeightScore, &c.EvaluationType, &c.EvidenceRequired, &typesJSON, &c.SortOrder, &c.CreatedAt); err != nil {
		return Criterion{}, err
	}
	if len(typesJSON) > 0 {
		if err := json.Unmarshal(typesJSON, &c.EvidenceTypes); err != nil {
			c.EvidenceTypes = nil
		}
	}
	return c, nil
}

func marshalEvidenceTypes(types []string) ([]byte, error) {
	if len(types) == 0 {
		return nil, nil
	}
	return json.Marshal(types)
}
