// Package session persists a minimal {user, authenticated} snapshot between
// runs. The snapshot is a display cache only: it pre-populates the prompt
// identity before the first server verification and is never used for
// authorization decisions. Any 401 or logout clears it synchronously.
package session

import (
	"context"

	"github.com/aerofy/aerofy-cli/internal/client/models"
)

// Snapshot mirrors the last known auth state. Authenticated reflects the
// most recent server verification outcome at the time it was saved.
type Snapshot struct {
	User          *models.User `json:"user"`
	Authenticated bool         `json:"is_authenticated"`
}

// Store loads and saves the snapshot. Load returns (nil, nil) when no
// snapshot has been saved.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Clear(ctx context.Context) error
}
