// Package cursor persists serialized query state in the key-value store.
package cursor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/appindex/internal/db"
)

// keyPrefix namespaces cursor entries in the shared store.
const keyPrefix = "appindex:cursor:"

// kvStore is the consumer interface for cursor persistence.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo implements the search session's CursorStore contract.
type Repo struct {
	store kvStore
}

// New creates a cursor repository.
func New(store kvStore) *Repo {
	return &Repo{store: store}
}

// Put stores serialized query state under a cursor id with the given TTL.
// Cursor ids are unique per mint, so entries are never overwritten in place.
func (r *Repo) Put(ctx context.Context, cursorID, state string, ttl time.Duration) error {
	if err := r.store.SetWithTTL(ctx, keyPrefix+cursorID, []byte(state), ttl); err != nil {
		return fmt.Errorf("put cursor %s: %w", cursorID, err)
	}
	return nil
}

// Get reads serialized query state for a cursor id. A missing or expired
// entry reports found=false, not an error.
func (r *Repo) Get(ctx context.Context, cursorID string) (string, bool, error) {
	data, err := r.store.Get(ctx, keyPrefix+cursorID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get cursor %s: %w", cursorID, err)
	}
	return string(data), true, nil
}
