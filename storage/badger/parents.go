package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

// ParentChunkRepository implements storage.ParentChunkRepository for BadgerDB.
type ParentChunkRepository struct {
	backend *Backend
}

var _ storage.ParentChunkRepository = (*ParentChunkRepository)(nil)

// NewParentChunkRepository creates a new ParentChunkRepository.
func NewParentChunkRepository(backend *Backend) *ParentChunkRepository {
	return &ParentChunkRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *ParentChunkRepository) Close() error {
	return nil
}

// PutParentChunks stores original chunk texts under their generated keys.
func (r *ParentChunkRepository) PutParentChunks(ctx context.Context, chunks ...*core.ParentChunk) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeParentChunkKey(chunk.Key)
			if err := tx.Set(key, storage.MarshalParentChunk(chunk)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetParentChunk retrieves an original chunk text by key.
func (r *ParentChunkRepository) GetParentChunk(ctx context.Context, key string) (*core.ParentChunk, error) {
	var chunk *core.ParentChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeParentChunkKey(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			chunk, err = storage.UnmarshalParentChunk(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}
