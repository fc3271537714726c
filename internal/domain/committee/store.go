package committee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Create inserts one assignment. The unique index on
// (committee_id, evaluatee_id, period_id) makes each insert atomic under
// concurrent writers; duplicates surface as ErrDuplicateAssignment.
func (s *Store) Create(ctx context.Context, committeeID, evaluateeID, periodID, role, assignedBy string) (Assignment, error) {
	var a Assignment
	err := s.DB.QueryRow(ctx, `
    INSERT INTO committee_assignments (committee_id, evaluatee_id, period_id, role, assigned_by)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, committee_id, evaluatee_id, period_id, role, COALESCE(assigned_by::text, ''), assigned_at
  `, committeeID, evaluateeID, periodID, role, nullIfEmpty(assignedBy)).
		Scan(&a.ID, &a.CommitteeID, &a.EvaluateeID, &a.PeriodID, &a.Role, &a.AssignedBy, &a.AssignedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Assignment{}, ErrDuplicateAssignment
			case "23514":
				return Assignment{}, ErrSelfAssignment
			}
		}
		return Assignment{}, err
	}
	return a, nil
}

func (s *Store) ListByPeriod(ctx context.Context, periodID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ca.id, ca.committee_id, ca.evaluatee_id, ca.period_id, ca.role,
           COALESCE(ca.assigned_by::text, ''), ca.assigned_at,
           c.full_name, e.full_name, COALESCE(ab.full_name, ''), ep.period_name
    FROM committee_assignments ca
    JOIN users c ON ca.committee_id = c.id
    JOIN users e ON ca.evaluatee_id = e.id
    LEFT JOIN users ab ON ca.assigned_by = ab.id
    JOIN evaluation_periods ep ON ca.period_id = ep.id
    WHERE ca.period_id = $1
    ORDER BY c.full_name ASC, e.full_name ASC
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (s *Store) EvaluateesByCommittee(ctx context.Context, committeeID, periodID string) ([]Assignment, error) {
	query := `
    SELECT ca.id, ca.committee_id, ca.evaluatee_id, ca.period_id, ca.role,
           COALESCE(ca.assigned_by::text, ''), ca.assigned_at,
           '', e.full_name, '', ep.period_name
    FROM committee_assignments ca
    JOIN users e ON ca.evaluatee_id = e.id
    JOIN evaluation_periods ep ON ca.period_id = ep.id
    WHERE ca.committee_id = $1
  `
	args := []any{committeeID}
	if periodID != "" {
		query += " AND ca.period_id = $2"
		args = append(args, periodID)
	}
	query += " ORDER BY ep.start_date DESC, e.full_name ASC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (s *Store) CommitteesByEvaluatee(ctx context.Context, evaluateeID, periodID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ca.id, ca.committee_id, ca.evaluatee_id, ca.period_id, ca.role,
           COALESCE(ca.assigned_by::text, ''), ca.assigned_at,
           c.full_name, '', '', ''
    FROM committee_assignments ca
    JOIN users c ON ca.committee_id = c.id
    WHERE ca.evaluatee_id = $1 AND ca.period_id = $2
    ORDER BY ca.role DESC, c.full_name ASC
  `, evaluateeID, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (s *Store) Find(ctx context.Context, id string) (Assignment, error) {
	var a Assignment
	err := s.DB.QueryRow(ctx, `
    SELECT ca.id, ca.committee_id, ca.evaluatee_id, ca.period_id, ca.role,
           COALESCE(ca.assigned_by::text, ''), ca.assigned_at,
           c.full_name, e.full_name, COALESCE(ab.full_name, ''), ep.period_name
    FROM committee_assignments ca
    JOIN users c ON ca.committee_id = c.id
    JOIN users e ON ca.evaluatee_id = e.id
    LEFT JOIN users ab ON ca.assigned_by = ab.id
    JOIN evaluation_periods ep ON ca.period_id = ep.id
    WHERE ca.id = $1
  `, id).Scan(&a.ID, &a.CommitteeID, &a.EvaluateeID, &a.PeriodID, &a.Role,
		&a.AssignedBy, &a.AssignedAt, &a.CommitteeName, &a.EvaluateeName, &a.AssignedByName, &a.PeriodName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assignment{}, ErrNotFound
	}
	return a, err
}

func (s *Store) UpdateRole(ctx context.Context, id, role string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE committee_assignments SET role = $1 WHERE id = $2", role, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ScoredCount counts evaluation records in which this assignment's committee
// member has scored this evaluatee in this period.
func (s *Store) ScoredCount(ctx context.Context, id string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM user_evaluations ue
    JOIN committee_assignments ca ON ue.period_id = ca.period_id AND ue.user_id = ca.evaluatee_id
    WHERE ca.id = $1 AND ue.committee_evaluated_by = ca.committee_id
  `, id).Scan(&count)
	return count, err
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM committee_assignments WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteByPeriod(ctx context.Context, periodID string) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM committee_assignments WHERE period_id = $1", periodID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) Statistics(ctx context.Context, periodID string) (Statistics, error) {
	var stats Statistics
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COUNT(DISTINCT committee_id),
           COUNT(DISTINCT evaluatee_id),
           COALESCE(SUM(CASE WHEN role = 'chairman' THEN 1 ELSE 0 END), 0),
           COALESCE(SUM(CASE WHEN role = 'member' THEN 1 ELSE 0 END), 0)
    FROM committee_assignments
    WHERE period_id = $1
  `, periodID).Scan(&stats.TotalAssignments, &stats.TotalCommittees, &stats.TotalEvaluatees,
		&stats.ChairmanCount, &stats.MemberCount); err != nil {
		return Statistics{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT ca.committee_id, c.full_name, COUNT(1) AS evaluatee_count
    FROM committee_assignments ca
    JOIN users c ON ca.committee_id = c.id
    WHERE ca.period_id = $1
    GROUP BY ca.committee_id, c.full_name
    ORDER BY evaluatee_count DESC
  `, periodID)
	if err != nil {
		return Statistics{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry WorkloadEntry
		if err := rows.Scan(&entry.CommitteeID, &entry.CommitteeName, &entry.EvaluateeCount); err != nil {
			return Statistics{}, err
		}
		stats.Workload = append(stats.Workload, entry)
	}
	return stats, rows.Err()
}

// Permission returns the role the committee member holds over the evaluatee
// for the period, or ErrNotAssigned.
func (s *Store) Permission(ctx context.Context, committeeID, evaluateeID, periodID string) (string, error) {
	var role string
	err := s.DB.QueryRow(ctx, `
    SELECT role FROM committee_assignments
    WHERE committee_id = $1 AND evaluatee_id = $2 AND period_id = $3
  `, committeeID, evaluateeID, periodID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotAssigned
	}
	return role, err
}

func collectAssignments(rows pgx.Rows) ([]Assignment, error) {
	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.CommitteeID, &a.EvaluateeID, &a.PeriodID, &a.Role,
			&a.AssignedBy, &a.AssignedAt, &a.CommitteeName, &a.EvaluateeName, &a.AssignedByName, &a.PeriodName); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
