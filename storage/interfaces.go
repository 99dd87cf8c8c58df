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


package storage

import (
	"context"

	"github.com/poiesic/docquery/core"
)

// VectorRepository stores embedded chunks and answers similarity queries.
// Repositories are partitioned by namespace: records written under one
// namespace (one embedding model) are invisible to queries against another.
type VectorRepository interface {
	// PutVectorRecords stores the given records. Existing records with the
	// same VectorID are overwritten.
	PutVectorRecords(ctx context.Context, namespace string, records ...*core.VectorRecord) error

	// GetVectorRecord retrieves a single record by id.
	// Returns ErrNotFound if the record doesn't exist.
	GetVectorRecord(ctx context.Context, namespace, vectorID string) (*core.VectorRecord, error)

	// DeleteVectorRecords removes records by id. Deleting an absent id is
	// not an error; the operation is idempotent.
	DeleteVectorRecords(ctx context.Context, namespace string, vectorIDs ...string) error

	// FindSimilar returns up to limit records ordered by cosine similarity
	// to the given vector, highest first. An empty result is valid.
	FindSimilar(ctx context.Context, namespace string, vector []float32, limit int) ([]*core.SearchResult, error)

	// Close closes the repository.
	Close() error
}

// LinkRepository persists chunk-to-parent links.
type LinkRepository interface {
	// AddLinks persists one link per vector id for a parent file.
	AddLinks(ctx context.Context, links ...*core.ChunkLink) error

	// GetLinksByParent returns all links recorded for a parent file.
	// Returns an empty slice when the parent has no links.
	GetLinksByParent(ctx context.Context, parentID core.ParentID) ([]*core.ChunkLink, error)

	// DeleteLinksByParent removes all links for a parent file.
	DeleteLinksByParent(ctx context.Context, parentID core.ParentID) error

	// Close closes the repository.
	Close() error
}

// ParentChunkRepository retains original chunk texts when the summarize
// strategy substitutes summaries as the embedded text.
type ParentChunkRepository interface {
	// PutParentChunks stores original chunk texts under their generated keys.
	PutParentChunks(ctx context.Context, chunks ...*core.ParentChunk) error

	// GetParentChunk retrieves an original chunk text by key.
	// Returns ErrNotFound if the key doesn't exist.
	GetParentChunk(ctx context.Context, key string) (*core.ParentChunk, error)

	// Close closes the repository.
	Close() error
}

// VersionRepository tracks a monotonically increasing version counter per
// owner key. Sessions poll it to detect out-of-band configuration changes.
type VersionRepository interface {
	// Version returns the current version for an owner key.
	// An owner with no recorded version is at version 0.
	Version(ctx context.Context, ownerKey string) (uint64, error)

	// BumpVersion increments and returns the version for an owner key.
	BumpVersion(ctx context.Context, ownerKey string) (uint64, error)

	// Close closes the repository.
	Close() error
}
