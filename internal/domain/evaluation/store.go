package evaluation

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

const recordColumns = `
    ue.id, ue.user_id, ue.criteria_id, ue.period_id,
    ue.self_selected_option_id, ue.self_score, ue.self_comment,
    ue.evidence_files, ue.evidence_urls, ue.evidence_text,
    ue.committee_selected_option_id, ue.committee_score, ue.committee_comment,
    ue.committee_evaluated_by, ue.status, ue.submitted_at, ue.evaluated_at,
    ue.created_at, ue.updated_at`

// SaveSelf upserts the evaluatee's answer for one criterion. The single
// statement only touches rows still in draft, so a submitted or later record
// can never be rewritten; when the guard filters the row out the caller gets
// a StateError.
func (s *Store) SaveSelf(ctx context.Context, userID, criteriaID, periodID string, sel SelfSelection) (string, error) {
	files, err := marshalStringList(sel.EvidenceFiles)
	if err != nil {
		return "", err
	}
	urls, err := marshalStringList(sel.EvidenceURLs)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO user_evaluations
      (user_id, criteria_id, period_id, self_selected_option_id, self_score,
       self_comment, evidence_files, evidence_urls, evidence_text, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'draft')
    ON CONFLICT (user_id, criteria_id, period_id) DO UPDATE SET
      self_selected_option_id = EXCLUDED.self_selected_option_id,
      self_score              = EXCLUDED.self_score,
      self_comment            = EXCLUDED.self_comment,
      evidence_files          = EXCLUDED.evidence_files,
      evidence_urls           = EXCLUDED.evidence_urls,
      evidence_text           = EXCLUDED.evidence_text,
      updated_at              = now()
    WHERE user_evaluations.status = 'draft'
    RETURNING id
  `, userID, criteriaID, periodID, sel.OptionID, sel.Score, sel.Comment, files, urls, sel.EvidenceText).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		status, serr := s.statusOf(ctx, userID, criteriaID, periodID)
		if serr != nil {
			return "", serr
		}
		return "", &StateError{Current: status, Wanted: StatusDraft}
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) statusOf(ctx context.Context, userID, criteriaID, periodID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, `
    SELECT status FROM user_evaluations
    WHERE user_id = $1 AND criteria_id = $2 AND period_id = $3
  `, userID, criteriaID, periodID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return status, err
}

// Submit moves every draft record of a user in a period to submitted and
// returns how many rows transitioned.
func (s *Store) Submit(ctx context.Context, userID, periodID string) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE user_evaluations
    SET status = 'submitted', submitted_at = now(), updated_at = now()
    WHERE user_id = $1 AND period_id = $2 AND status = 'draft'
  `, userID, periodID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Evaluate records the committee judgement on a submitted record. The status
// predicate in the UPDATE keeps two committee members from both scoring the
// same record.
func (s *Store) Evaluate(ctx context.Context, recordID, scorerID string, sel CommitteeSelection) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE user_evaluations
    SET committee_selected_option_id = $1,
        committee_score              = $2,
        committee_comment            = $3,
        committee_evaluated_by       = $4,
        status                       = 'evaluated',
        evaluated_at                 = now(),
        updated_at                   = now()
    WHERE id = $5 AND status = 'submitted'
  `, sel.OptionID, sel.Score, sel.Comment, scorerID, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := s.DB.QueryRow(ctx, `SELECT status FROM user_evaluations WHERE id = $1`, recordID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return &StateError{Current: status, Wanted: StatusSubmitted}
	}
	return nil
}

// Approve finalizes the given records and returns how many rows transitioned.
// Records not currently evaluated are excluded from the count rather than
// failing the batch.
func (s *Store) Approve(ctx context.Context, recordIDs []string, approvedBy string) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE user_evaluations
    SET status = 'approved', approved_by = $2, updated_at = now()
    WHERE id = ANY($1) AND status = 'evaluated'
  `, recordIDs, approvedBy)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// StatusCounts returns the rubric size and per-state record counts for a user
// in a period.
func (s *Store) StatusCounts(ctx context.Context, userID, periodID string) (total, draft, submitted, evaluated, approved int, err error) {
	err = s.DB.QueryRow(ctx, `
    SELECT count(*)
    FROM evaluation_criteria c
    JOIN evaluation_topics t ON t.id = c.topic_id
    WHERE t.period_id = $1
  `, periodID).Scan(&total)
	if err != nil {
		return
	}

	err = s.DB.QueryRow(ctx, `
    SELECT
      count(*) FILTER (WHERE status = 'draft'),
      count(*) FILTER (WHERE status = 'submitted'),
      count(*) FILTER (WHERE status = 'evaluated'),
      count(*) FILTER (WHERE status = 'approved')
    FROM user_evaluations
    WHERE user_id = $2 AND period_id = $1
  `, periodID, userID).Scan(&draft, &submitted, &evaluated, &approved)
	return
}

// ListByUserAndPeriod returns a user's records with their rubric context,
// ordered by topic then criterion.
func (s *Store) ListByUserAndPeriod(ctx context.Context, userID, periodID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`,
      c.criteria_name, c.weight_score, c.evaluation_type,
      t.id, t.topic_name, t.weight_percentage,
      ev.full_name
    FROM user_evaluations ue
    JOIN evaluation_criteria c ON c.id = ue.criteria_id
    JOIN evaluation_topics t ON t.id = c.topic_id
    LEFT JOIN users ev ON ev.id = ue.committee_evaluated_by
    WHERE ue.user_id = $1 AND ue.period_id = $2
    ORDER BY t.sort_order, t.id, c.sort_order, c.id
  `, userID, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows, true)
}

// Find returns a single record with its rubric context.
func (s *Store) Find(ctx context.Context, id string) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`,
      c.criteria_name, c.weight_score, c.evaluation_type,
      t.id, t.topic_name, t.weight_percentage,
      ev.full_name
    FROM user_evaluations ue
    JOIN evaluation_criteria c ON c.id = ue.criteria_id
    JOIN evaluation_topics t ON t.id = c.topic_id
    LEFT JOIN users ev ON ev.id = ue.committee_evaluated_by
    WHERE ue.id = $1
  `, id)

	r, err := scanRecord(row, true)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

// Worklist returns the evaluatees assigned to a committee member in a period
// along with how far their records have progressed.
func (s *Store) Worklist(ctx context.Context, committeeID, periodID string) ([]WorklistEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.full_name, u.department, u.position, ca.role,
      count(ue.id) FILTER (WHERE ue.status = 'submitted'),
      count(ue.id) FILTER (WHERE ue.status = 'evaluated'),
      count(ue.id) FILTER (WHERE ue.status = 'approved')
    FROM committee_assignments ca
    JOIN users u ON u.id = ca.evaluatee_id
    LEFT JOIN user_evaluations ue
      ON ue.user_id = ca.evaluatee_id AND ue.period_id = ca.period_id
    WHERE ca.committee_id = $1 AND ca.period_id = $2
    GROUP BY u.id, u.full_name, u.department, u.position, ca.role
    ORDER BY u.full_name
  `, committeeID, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []WorklistEntry
	for rows.Next() {
		var e WorklistEntry
		if err := rows.Scan(&e.EvaluateeID, &e.EvaluateeName, &e.Department, &e.Position,
			&e.CommitteeRole, &e.SubmittedCount, &e.EvaluatedCount, &e.ApprovedCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PeriodSummary aggregates record states across every participant of a period.
func (s *Store) PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error) {
	var sum PeriodSummary
	err := s.DB.QueryRow(ctx, `
    SELECT
      count(DISTINCT user_id),
      count(*) FILTER (WHERE status = 'draft'),
      count(*) FILTER (WHERE status = 'submitted'),
      count(*) FILTER (WHERE status = 'evaluated'),
      count(*) FILTER (WHERE status = 'approved')
    FROM user_evaluations
    WHERE period_id = $1
  `, periodID).Scan(&sum.TotalParticipants, &sum.DraftCount, &sum.SubmittedCount,
		&sum.EvaluatedCount, &sum.ApprovedCount)
	return sum, err
}

func collectRecords(rows pgx.Rows, joined bool) ([]Record, error) {
	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows, joined)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row, joined bool) (Record, error) {
	var (
		r           Record
		files, urls []byte
	)
	dest := []any{
		&r.ID, &r.UserID, &r.CriteriaID, &r.PeriodID,
		&r.SelfOptionID, &r.SelfScore, &r.SelfComment,
		&files, &urls, &r.EvidenceText,
		&r.CommitteeOptionID, &r.CommitteeScore, &r.CommitteeComment,
		&r.CommitteeEvaluatedBy, &r.Status, &r.SubmittedAt, &r.EvaluatedAt,
		&r.CreatedAt, &r.UpdatedAt,
	}
	if joined {
		dest = append(dest,
			&r.CriteriaName, &r.CriteriaWeight, &r.EvaluationType,
			&r.TopicID, &r.TopicName, &r.TopicWeight,
			&r.EvaluatorName,
		)
	}
	if err := row.Scan(dest...); err != nil {
		return Record{}, err
	}
	if files != nil {
		if err := json.Unmarshal(files, &r.EvidenceFiles); err != nil {
			return Record{}, err
		}
	}
	if urls != nil {
		if err := json.Unmarshal(urls, &r.EvidenceURLs); err != nil {
			return Record{}, err
		}
	}
	return r, nil
}

func marshalStringList(list []string) ([]byte, error) {
	if len(list) == 0 {
		return nil, nil
	}
	return json.Marshal(list)
}
