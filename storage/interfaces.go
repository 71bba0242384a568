package storage

import (
	"context"

	"github.com/poiesic/souk/core"
)

// RelationRepository persists resolved ontology relationships keyed by the
// normalized query key. Implementations must be thread-safe and support
// concurrent access.
//
// Entries are written once per key and never expire; the repository is the
// warm cache that survives process restarts.
type RelationRepository interface {
	// GetResolution retrieves the cached resolution for a key.
	// Returns ErrNotFound if the key has never been resolved.
	GetResolution(ctx context.Context, key core.ID) (*core.Resolution, error)

	// PutResolution stores a resolution under the key. The first write for a
	// key wins; putting an already-present key is a no-op success, so
	// concurrent resolvers never overwrite each other's answers.
	PutResolution(ctx context.Context, key core.ID, resolution *core.Resolution) error

	// AllResolutions iterates every cached resolution. Iteration stops and
	// returns the first error fn reports.
	AllResolutions(ctx context.Context, fn func(key core.ID, resolution *core.Resolution) error) error

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
