package period

import (
	"context"
	"errors"
	"strconv"
	"time"

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

const selectColumns = `
    SELECT p.id, p.period_name, p.description, p.start_date, p.end_date, p.is_active,
           COALESCE(p.created_by::text, ''), COALESCE(u.full_name, ''), p.created_at, p.updated_at
    FROM evaluation_periods p
    LEFT JOIN users u ON p.created_by = u.id
`

func scanPeriod(row pgx.Row) (Period, error) {
	var p Period
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.IsActive,
		&p.CreatedBy, &p.CreatedByName, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Period, error) {
	query := selectColumns + " WHERE 1=1"
	var args []any
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += " AND p.is_active = $1"
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += " AND p.start_date >= $" + itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += " AND p.end_date <= $" + itoa(len(args))
	}
	query += " ORDER BY p.start_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) Find(ctx context.Context, id string) (Period, error) {
	p, err := scanPeriod(s.DB.QueryRow(ctx, selectColumns+" WHERE p.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, ErrNotFound
	}
	return p, err
}

// FindOverlapping returns the id of an active period whose inclusive date range
// intersects [start, end], excluding excludeID when non-empty.
func (s *Store) FindOverlapping(ctx context.Context, start, end time.Time, excludeID string) (string, bool, error) {
	query := `
    SELECT id FROM evaluation_periods
    WHERE is_active = TRUE AND start_date <= $2 AND end_date >= $1
  `
	args := []any{start, end}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	query += " LIMIT 1"

	var id string
	err := s.DB.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (s *Store) Create(ctx context.Context, name, description string, start, end time.Time, createdBy string) (Period, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluation_periods (period_name, description, start_date, end_date, created_by)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, name, description, start, end, nullIfEmpty(createdBy)).Scan(&id)
	if err != nil {
		return Period{}, mapExclusion(err, start, end)
	}
	return s.Find(ctx, id)
}

func (s *Store) Update(ctx context.Context, id, name, description string, start, end time.Time, isActive bool) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluation_periods
    SET period_name = $1, description = $2, start_date = $3, end_date = $4, is_active = $5, updated_at = now()
    WHERE id = $6
  `, name, description, start, end, isActive, id)
	if err != nil {
		return false, mapExclusion(err, start, end)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) EvaluationCount(ctx context.Context, id string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM user_evaluations WHERE period_id = $1", id).Scan(&count)
	return count, err
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluation_periods WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ActivePeriods(ctx context.Context, today time.Time) ([]Period, error) {
	rows, err := s.DB.Query(ctx, selectColumns+`
    WHERE p.is_active = TRUE AND p.start_date <= $1 AND p.end_date >= $1
    ORDER BY p.start_date ASC
  `, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) Statistics(ctx context.Context, id string) (Statistics, error) {
	var stats Statistics
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(DISTINCT user_id),
           COALESCE(SUM(CASE WHEN status = 'submitted' THEN 1 ELSE 0 END), 0),
           COALESCE(SUM(CASE WHEN status = 'evaluated' THEN 1 ELSE 0 END), 0),
           COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0)
    FROM user_evaluations
    WHERE period_id = $1
  `, id).Scan(&stats.TotalParticipants, &stats.SubmittedCount, &stats.EvaluatedCount, &stats.ApprovedCount)
	return stats, err
}

// The exclusion constraint on active period ranges is the backstop for
// concurrent writers; the service does a friendlier pre-check first.
func mapExclusion(err error, start, end time.Time) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
		return &OverlapError{Start: start, End: end}
	}
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
