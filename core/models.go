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


package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ParentID identifies the parent file a chunk was split from.
// It is assigned by the external metadata layer that accepted the upload.
type ParentID int64

// HashContent computes a hex-encoded BLAKE2b digest of raw file content.
// Identical content always produces the same hash, which is how duplicate
// uploads are detected within a parent scope.
func HashContent(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// IngestionJob describes one file to be split, embedded, and linked.
// Jobs are immutable once created: the splitting policy and summarization
// choice are snapshots taken at enqueue time, so a configuration change
// only affects jobs enqueued after it.
type IngestionJob struct {
	FilePath   string
	ParentID   ParentID
	EnqueuedAt time.Time
	Split      RagConfig
	Summarize  bool
}

// Chunk is a unit of split document text eligible for embedding.
// SummaryOf carries the parent-store key of the original text when the
// chunk's Text is a generated summary substitute.
type Chunk struct {
	Text      string
	ParentID  ParentID
	Seq       int
	SummaryOf string
}

// ChunkLink relates a parent file to one durable vector-index identifier.
// Every chunk successfully added to the index has exactly one link
// persisted before its job is considered complete.
type ChunkLink struct {
	ParentID ParentID
	VectorID string
}

// VectorRecord is a chunk as stored in the vector index, together with
// its embedding and provenance.
type VectorRecord struct {
	VectorID   string
	ParentID   ParentID
	Seq        int
	Text       string
	Vector     []float32
	SummaryOf  string
	InsertedAt time.Time
}

// ParentChunk retains the original text of a chunk whose embedded text was
// replaced by a summary. It is keyed by a generated per-chunk identifier.
type ParentChunk struct {
	Key  string
	Text string
}

// SearchResult is a vector-index match with its similarity score.
type SearchResult struct {
	Record *VectorRecord
	Score  float32
}
