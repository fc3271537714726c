package reports

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("report subject not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Subject(ctx context.Context, userID string) (Subject, error) {
	var sub Subject
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, department, position
    FROM users
    WHERE id = $1
  `, userID).Scan(&sub.UserID, &sub.FullName, &sub.Department, &sub.Position)
	if errors.Is(err, pgx.ErrNoRows) {
		return Subject{}, ErrNotFound
	}
	return sub, err
}

func (s *Store) PeriodName(ctx context.Context, periodID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, `
    SELECT period_name FROM evaluation_periods WHERE id = $1
  `, periodID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return name, err
}

// Participants lists everyone with at least one record in the period.
func (s *Store) Participants(ctx context.Context, periodID string) ([]Subject, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT u.id, u.full_name, u.department, u.position
    FROM user_evaluations ue
    JOIN users u ON u.id = ue.user_id
    WHERE ue.period_id = $1
    ORDER BY u.full_name
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []Subject
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.UserID, &sub.FullName, &sub.Department, &sub.Position); err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}
