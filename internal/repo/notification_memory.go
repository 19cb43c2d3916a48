package repo

import (
	"context"
	"slices"

	"github.com/rogerio-castellano/medisync/internal/models"
)

type InMemoryNotificationRepository struct {
	db *InMemoryDB
}

func NewInMemoryNotificationRepository(db *InMemoryDB) *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{db: db}
}

func (r *InMemoryNotificationRepository) List(_ context.Context, limit int) ([]models.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	notifications := slices.Clone(r.db.notifications)
	slices.SortStableFunc(notifications, func(a, b models.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return b.ID - a.ID
	})
	if n := normalizeLimit(limit); len(notifications) > n {
		notifications = notifications[:n]
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (r *InMemoryNotificationRepository) Create(_ context.Context, n models.Notification) (models.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.insertNotification(n), nil
}
