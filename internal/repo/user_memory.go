package repo

import (
	"context"

	"github.com/rogerio-castellano/medisync/internal/models"
)

type InMemoryUserRepository struct {
	db *InMemoryDB
}

func NewInMemoryUserRepository(db *InMemoryDB) *InMemoryUserRepository {
	return &InMemoryUserRepository{db: db}
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) CreateUser(_ context.Context, u models.User) (models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	u.ID = len(r.db.users) + 1
	r.db.users = append(r.db.users, u)
	return u, nil
}
