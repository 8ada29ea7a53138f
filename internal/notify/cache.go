package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const seenKeyTTL = 30 * 24 * time.Hour

// RedisSeenStore keeps last-seen statuses in Redis.
type RedisSeenStore struct {
	client *redis.Client
}

// NewRedisSeenStore creates a SeenStore backed by the given Redis client.
func NewRedisSeenStore(client *redis.Client) *RedisSeenStore {
	return &RedisSeenStore{client: client}
}

func seenKey(courierID int64) string {
	return fmt.Sprintf("courier:last_status:%d", courierID)
}

// LastStatus returns the last notified status for a courier, or "" if none.
func (s *RedisSeenStore) LastStatus(ctx context.Context, courierID int64) (string, error) {
	v, err := s.client.Get(ctx, seenKey(courierID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get last status for courier %d: %w", courierID, err)
	}
	return v, nil
}

// SetLastStatus records the last notified status for a courier.
func (s *RedisSeenStore) SetLastStatus(ctx context.Context, courierID int64, status string) error {
	if err := s.client.Set(ctx, seenKey(courierID), status, seenKeyTTL).Err(); err != nil {
		return fmt.Errorf("set last status for courier %d: %w", courierID, err)
	}
	return nil
}

// MemorySeenStore is an in-process SeenStore used when Redis is not configured.
type MemorySeenStore struct {
	mu   sync.RWMutex
	seen map[int64]string
}

// NewMemorySeenStore creates an empty in-memory SeenStore.
func NewMemorySeenStore() *MemorySeenStore {
	return &MemorySeenStore{seen: make(map[int64]string)}
}

// LastStatus returns the last notified status for a courier, or "" if none.
func (s *MemorySeenStore) LastStatus(_ context.Context, courierID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen[courierID], nil
}

// SetLastStatus records the last notified status for a courier.
func (s *MemorySeenStore) SetLastStatus(_ context.Context, courierID int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[courierID] = status
	return nil
}
