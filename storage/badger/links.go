package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

// LinkRepository implements storage.LinkRepository for BadgerDB.
type LinkRepository struct {
	backend *Backend
}

var _ storage.LinkRepository = (*LinkRepository)(nil)

// NewLinkRepository creates a new LinkRepository.
func NewLinkRepository(backend *Backend) *LinkRepository {
	return &LinkRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *LinkRepository) Close() error {
	return nil
}

// AddLinks persists one link per vector id for a parent file.
func (r *LinkRepository) AddLinks(ctx context.Context, links ...*core.ChunkLink) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, link := range links {
			key := makeChunkLinkKey(link.ParentID, link.VectorID)
			if err := tx.Set(key, storage.MarshalChunkLink(link)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetLinksByParent returns all links recorded for a parent file.
func (r *LinkRepository) GetLinksByParent(ctx context.Context, parentID core.ParentID) ([]*core.ChunkLink, error) {
	var links []*core.ChunkLink
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialChunkLinkKey(parentID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var link *core.ChunkLink
			err := iter.Item().Value(func(val []byte) error {
				var err error
				link, err = storage.UnmarshalChunkLink(val)
				return err
			})
			if err != nil {
				return err
			}
			links = append(links, link)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteLinksByParent removes all links for a parent file.
func (r *LinkRepository) DeleteLinksByParent(ctx context.Context, parentID core.ParentID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialChunkLinkKey(parentID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}
