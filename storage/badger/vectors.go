// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

// VectorRepository implements storage.VectorRepository for BadgerDB.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(backend *Backend) *VectorRepository {
	return &VectorRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *VectorRepository) Close() error {
	return nil
}

// PutVectorRecords stores the given records under a namespace.
func (r *VectorRepository) PutVectorRecords(ctx context.Context, namespace string, records ...*core.VectorRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			key := makeVectorRecordKey(namespace, record.VectorID)
			value := storage.MarshalVectorRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetVectorRecord retrieves a single record by id.
func (r *VectorRepository) GetVectorRecord(ctx context.Context, namespace, vectorID string) (*core.VectorRecord, error) {
	var record *core.VectorRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorRecordKey(namespace, vectorID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalVectorRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteVectorRecords removes records by id. Absent ids are skipped, so the
// operation is idempotent.
func (r *VectorRepository) DeleteVectorRecords(ctx context.Context, namespace string, vectorIDs ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, vectorID := range vectorIDs {
			if err := tx.Delete(makeVectorRecordKey(namespace, vectorID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindSimilar returns up to limit records ordered by cosine similarity.
func (r *VectorRepository) FindSimilar(ctx context.Context, namespace string, vector []float32, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SearchResult
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorNamespacePrefix(namespace)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.VectorRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalVectorRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}

			results = append(results, &core.SearchResult{
				Record: record,
				Score:  cosineSimilarity(vector, record.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// cosineSimilarity calculates the cosine similarity of two vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
