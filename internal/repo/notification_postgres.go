package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/medisync/internal/models"
)

type PostgresNotificationRepository struct {
	db      Querier
	timeout time.Duration
}

func NewPostgresNotificationRepository(db Querier, timeout time.Duration) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db, timeout: timeout}
}

// List returns the newest notifications first. A non-positive limit means the default.
func (r *PostgresNotificationRepository) List(ctx context.Context, limit int) ([]models.Notification, error) {
	query := `SELECT id, message, created_at, COALESCE(is_read, FALSE), COALESCE(type, '')
		FROM notification
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.CreatedAt, &n.IsRead, &n.Type); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	query := `INSERT INTO notification (message, is_read, type) VALUES ($1, $2, NULLIF($3, '')) RETURNING id, created_at`
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRow(ctx, query, n.Message, n.IsRead, n.Type).Scan(&n.ID, &n.CreatedAt); err != nil {
		return models.Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}
	return n, nil
}
