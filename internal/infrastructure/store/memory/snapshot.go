// internal/infrastructure/store/memory/snapshot.go
package memory

import (
	"context"
	"sync"

	"github.com/manobakers/bakery-backend/internal/domain/order"
)

// SnapshotStore keeps session snapshots in process memory. Used in tests
// and when running without Redis; snapshots do not survive a restart.
type SnapshotStore struct {
	mu    sync.RWMutex
	snaps map[string]order.Snapshot
}

// NewSnapshotStore creates an empty in-memory snapshot store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snaps: make(map[string]order.Snapshot),
	}
}

// Load returns the stored snapshot, or nil when the session has none
func (s *SnapshotStore) Load(_ context.Context, sessionID string) (*order.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[sessionID]
	if !ok {
		return nil, nil
	}

	// Copy so callers cannot mutate stored state
	out := snap
	out.Lines = append([]order.CartLine(nil), snap.Lines...)
	return &out, nil
}

// Save overwrites the session snapshot
func (s *SnapshotStore) Save(_ context.Context, sessionID string, snap *order.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *snap
	stored.Lines = append([]order.CartLine(nil), snap.Lines...)
	s.snaps[sessionID] = stored
	return nil
}

// Delete removes the session snapshot
func (s *SnapshotStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snaps, sessionID)
	return nil
}
