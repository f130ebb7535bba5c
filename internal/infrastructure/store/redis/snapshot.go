// internal/infrastructure/store/redis/snapshot.go
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/manobakers/bakery-backend/internal/domain/order"
	"github.com/redis/go-redis/v9"
)

// SnapshotStore persists session cart snapshots as JSON in Redis under
// cart:session:<id> with a sliding TTL
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore creates a Redis-backed snapshot store
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load returns the stored snapshot, or nil when the session has none
func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (*order.Snapshot, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	var snap order.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		// Treat a corrupt snapshot as absent
		return nil, nil
	}

	return &snap, nil
}

// Save overwrites the session snapshot and refreshes its TTL
func (s *SnapshotStore) Save(ctx context.Context, sessionID string, snap *order.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}

	return s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err()
}

// Delete removes the session snapshot
func (s *SnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
