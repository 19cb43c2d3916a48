package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rogerio-castellano/medisync/internal/models"
)

type PostgresUserRepository struct {
	db      Querier
	timeout time.Duration
}

func NewPostgresUserRepository(db Querier, timeout time.Duration) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, timeout: timeout}
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	query := `SELECT id, username, password_hash, COALESCE(name, '') FROM users WHERE username = $1`
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var u models.User
	err := r.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	query := `INSERT INTO users (username, password_hash, name) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRow(ctx, query, u.Username, u.PasswordHash, u.Name).Scan(&u.ID); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return models.User{}, ErrDuplicatedValueUnique
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}
