// internal/domain/order/store.go
package order

import "context"

// SnapshotStore persists per-session cart snapshots. Writes are
// synchronous, last-write-wins; a missing snapshot is not an error.
type SnapshotStore interface {
	// Load returns the snapshot for the session, or nil when none exists.
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	// Save overwrites the snapshot for the session.
	Save(ctx context.Context, sessionID string, snap *Snapshot) error
	// Delete removes the snapshot for the session.
	Delete(ctx context.Context, sessionID string) error
}
