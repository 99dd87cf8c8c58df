package badger

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docquery/storage"
)

// VersionRepository implements storage.VersionRepository for BadgerDB.
// Counters are stored as BigEndian uint64 values keyed by owner.
type VersionRepository struct {
	backend *Backend
}

var _ storage.VersionRepository = (*VersionRepository)(nil)

// NewVersionRepository creates a new VersionRepository.
func NewVersionRepository(backend *Backend) *VersionRepository {
	return &VersionRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *VersionRepository) Close() error {
	return nil
}

// Version returns the current version for an owner key.
// An owner with no recorded version is at version 0.
func (r *VersionRepository) Version(ctx context.Context, ownerKey string) (uint64, error) {
	var version uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeOwnerVersionKey(ownerKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return storage.ErrSerializationFailed
			}
			version = binary.BigEndian.Uint64(val)
			return nil
		})
	}, false)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// BumpVersion increments and returns the version for an owner key.
// Concurrent bumps are serialized by retrying on transaction conflict.
func (r *VersionRepository) BumpVersion(ctx context.Context, ownerKey string) (uint64, error) {
	for {
		var next uint64
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			key := makeOwnerVersionKey(ownerKey)
			var current uint64
			item, err := tx.Get(key)
			if err == nil {
				err = item.Value(func(val []byte) error {
					if len(val) != 8 {
						return storage.ErrSerializationFailed
					}
					current = binary.BigEndian.Uint64(val)
					return nil
				})
				if err != nil {
					return err
				}
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			next = current + 1
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, next)
			if err := tx.Set(key, buf); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			return 0, err
		}
	}
}
