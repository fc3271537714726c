package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/auth"
	"appraisal/internal/domain/users"
	"appraisal/internal/platform/config"
)

// Seed ensures an HR administrator account exists so a fresh install is usable.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminUsername == "" || cfg.SeedAdminPassword == "" {
		slog.Info("seed skipped, admin credentials not configured")
		return nil
	}

	var existing string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", cfg.SeedAdminUsername).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, password_hash, role, full_name, email)
    VALUES ($1, $2, $3, $4, $5)
  `, cfg.SeedAdminUsername, hash, users.RoleHR, "HR Administrator", "")
	if err != nil {
		return err
	}

	slog.Info("seeded HR admin user", "username", cfg.SeedAdminUsername)
	return nil
}
