// internal/domain/order/sessions.go
package order

import (
	"sync"

	"github.com/manobakers/bakery-backend/internal/domain/catalog"
)

// Sessions hands out one aggregator per session and serializes access to
// it. Aggregators themselves are lock-free; each logical session is
// single-threaded, and this registry enforces that at the HTTP seam.
type Sessions struct {
	catalog *catalog.Service
	store   SnapshotStore

	mu   sync.Mutex
	held map[string]*sessionEntry
}

type sessionEntry struct {
	mu  sync.Mutex
	agg *Aggregator
}

// NewSessions creates a session registry backed by the given catalog and
// snapshot store
func NewSessions(cat *catalog.Service, store SnapshotStore) *Sessions {
	return &Sessions{
		catalog: cat,
		store:   store,
		held:    make(map[string]*sessionEntry),
	}
}

// Do runs fn with exclusive access to the session's aggregator,
// constructing and hydrating it on first use
func (s *Sessions) Do(sessionID string, fn func(*Aggregator) error) error {
	s.mu.Lock()
	entry, ok := s.held[sessionID]
	if !ok {
		entry = &sessionEntry{}
		s.held[sessionID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.agg == nil {
		entry.agg = NewAggregator(s.catalog, s.store, sessionID)
	}

	return fn(entry.agg)
}
