package users

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

func (s *Store) FindCredentialsByUsername(ctx context.Context, username string) (Credentials, error) {
	var out Credentials
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, role, full_name, password_hash, status
    FROM users
    WHERE username = $1
  `, username).Scan(&out.ID, &out.Username, &out.Role, &out.FullName, &out.PasswordHash, &out.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrNotFound
	}
	return out, err
}

func (s *Store) Find(ctx context.Context, id string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, role, full_name, email, department, position, status, created_at
    FROM users
    WHERE id = $1
  `, id).Scan(&u.ID, &u.Username, &u.Role, &u.FullName, &u.Email, &u.Department, &u.Position, &u.Status, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) List(ctx context.Context, role string) ([]User, error) {
	query := `
    SELECT id, username, role, full_name, email, department, position, status, created_at
    FROM users
    WHERE status = $1
  `
	args := []any{StatusActive}
	if role != "" {
		query += " AND role = $2"
		args = append(args, role)
	}
	query += " ORDER BY full_name ASC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.FullName, &u.Email, &u.Department, &u.Position, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, username, passwordHash, role, fullName, email, department, position string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role, full_name, email, department, position)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, username, passwordHash, role, fullName, email, department, position).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateUsername
		}
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
