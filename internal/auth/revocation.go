package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/medisync/internal/redissvc"
)

// RevocationStore remembers logged-out session ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: map[string]time.Time{}, now: time.Now}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, id string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[id] = until
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[id]
	if !ok {
		return false, nil
	}
	if s.now().After(until) {
		delete(s.revoked, id)
		return false, nil
	}
	return true, nil
}

// StartCleanupLoop drops expired entries every interval until ctx is done.
func (s *MemoryRevocationStore) StartCleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for id, until := range s.revoked {
				if now.After(until) {
					delete(s.revoked, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

const revokedKeyPrefix = "medisync:session:revoked:"

// RedisRevocationStore keeps revoked ids in Redis with a TTL matching the session expiry,
// so every server instance sees the same logouts.
type RedisRevocationStore struct {
	rs *redissvc.RedisService
}

func NewRedisRevocationStore(rs *redissvc.RedisService) *RedisRevocationStore {
	return &RedisRevocationStore{rs: rs}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, id string, until time.Time) error {
	return s.rs.SetUntil(ctx, revokedKeyPrefix+id, "1", until)
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	return s.rs.Exists(ctx, revokedKeyPrefix+id)
}
