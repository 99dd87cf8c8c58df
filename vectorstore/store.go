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


package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

// deleteBatchSize is the number of ids removed per batch by DeleteAll.
const deleteBatchSize = 500

// Store wraps the vector index for one embedding model and namespace.
// It is safe for concurrent use by ingestion workers and query sessions.
type Store struct {
	namespace string
	embedder  ai.Embedder
	vectors   storage.VectorRepository
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Store over the given repository and embedder. The namespace
// partitions the index; it is conventionally derived from the embedding
// model name.
func New(embedder ai.Embedder, vectors storage.VectorRepository, namespace string, opts ...Option) (*Store, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if namespace == "" {
		return nil, ErrEmptyNamespace
	}

	s := &Store{
		namespace: namespace,
		embedder:  embedder,
		vectors:   vectors,
		logger:    slog.Default().With("component", "vectorstore", "namespace", namespace),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Namespace returns the index namespace this store writes to.
func (s *Store) Namespace() string {
	return s.namespace
}

// Add embeds the chunks and stores them, returning one durable identifier
// per input chunk in order. Any embedding-provider error aborts the whole
// call: no identifiers are returned and nothing is stored.
func (s *Store) Add(ctx context.Context, chunks []core.Chunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(chunks), len(vectors))
	}

	now := time.Now().UTC()
	ids := make([]string, len(chunks))
	records := make([]*core.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		ids[i] = uuid.NewString()
		records[i] = &core.VectorRecord{
			VectorID:   ids[i],
			ParentID:   chunk.ParentID,
			Seq:        chunk.Seq,
			Text:       chunk.Text,
			Vector:     vectors[i],
			SummaryOf:  chunk.SummaryOf,
			InsertedAt: now,
		}
	}

	if err := s.vectors.PutVectorRecords(ctx, s.namespace, records...); err != nil {
		return nil, err
	}

	s.logger.Debug("added chunks to index", "count", len(ids))
	return ids, nil
}

// Search returns up to k records ranked by similarity to the query.
// An empty result is a valid no-match outcome, not an error.
func (s *Store) Search(ctx context.Context, query string, k int) ([]*core.SearchResult, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	return s.vectors.FindSimilar(ctx, s.namespace, vector, k)
}

// Delete removes the given identifiers from the index. Deleting an
// already-absent identifier is not an error.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.vectors.DeleteVectorRecords(ctx, s.namespace, ids...)
}

// DeleteAll removes identifiers in fixed-size batches. A batch failure is
// reported with the offset of the first unprocessed identifier and is not
// retried here; the caller re-invokes deletion for the remainder.
func (s *Store) DeleteAll(ctx context.Context, ids []string) error {
	for i := 0; i < len(ids); i += deleteBatchSize {
		end := i + deleteBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := s.Delete(ctx, ids[i:end]); err != nil {
			return fmt.Errorf("delete batch at offset %d: %w", i, err)
		}
	}
	return nil
}
