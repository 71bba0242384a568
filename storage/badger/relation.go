package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/storage"
)

// RelationRepository implements storage.RelationRepository for BadgerDB.
type RelationRepository struct {
	backend *Backend
}

var _ storage.RelationRepository = (*RelationRepository)(nil)

// NewRelationRepository creates a new RelationRepository.
//
// Returns storage.RelationRepository interface to enforce abstraction.
func NewRelationRepository(backend *Backend) (storage.RelationRepository, error) {
	return newRelationRepository(backend)
}

// newRelationRepository is an internal constructor that returns the concrete type.
func newRelationRepository(backend *Backend) (*RelationRepository, error) {
	return &RelationRepository{
		backend: backend,
	}, nil
}

// Close releases resources. RelationRepository has no resources to release;
// the shared backend is closed by its owner.
func (r *RelationRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RelationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetResolution retrieves the cached resolution for a key.
func (r *RelationRepository) GetResolution(ctx context.Context, key core.ID) (*core.Resolution, error) {
	var resolution *core.Resolution
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		resolution, err = readResolution(tx, makeRelationKey(key))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if resolution == nil {
		return nil, storage.ErrNotFound
	}
	return resolution, nil
}

// PutResolution stores a resolution under the key. The first write wins:
// a key that is already present is left untouched and the put succeeds.
func (r *RelationRepository) PutResolution(ctx context.Context, key core.ID, resolution *core.Resolution) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		storageKey := makeRelationKey(key)

		existing, err := readResolution(tx, storageKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		if err := tx.Set(storageKey, storage.MarshalResolution(resolution)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AllResolutions iterates every cached resolution in key order.
func (r *RelationRepository) AllResolutions(ctx context.Context, fn func(key core.ID, resolution *core.Resolution) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(relationPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			id, ok := relationKeyID(item.Key())
			if !ok {
				continue
			}

			var resolution *core.Resolution
			err := item.Value(func(val []byte) error {
				var err error
				resolution, err = storage.UnmarshalResolution(val)
				return err
			})
			if err != nil {
				return err
			}

			if err := fn(id, resolution); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// readResolution reads and unmarshals a resolution inside a transaction.
// Returns nil without error when the key is absent.
func readResolution(tx *badger.Txn, key []byte) (*core.Resolution, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var resolution *core.Resolution
	err = item.Value(func(val []byte) error {
		var err error
		resolution, err = storage.UnmarshalResolution(val)
		return err
	})
	return resolution, err
}
