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
	"github.com/poiesic/docquery/core"
)

// MarshalVectorRecord serializes a VectorRecord to bytes.
func MarshalVectorRecord(record *core.VectorRecord) []byte {
	buf := make([]byte, core.VectorRecordMUS.Size(*record))
	core.VectorRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalVectorRecord deserializes a VectorRecord from bytes.
func UnmarshalVectorRecord(data []byte) (*core.VectorRecord, error) {
	record, _, err := core.VectorRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalChunkLink serializes a ChunkLink to bytes.
func MarshalChunkLink(link *core.ChunkLink) []byte {
	buf := make([]byte, core.ChunkLinkMUS.Size(*link))
	core.ChunkLinkMUS.Marshal(*link, buf)
	return buf
}

// UnmarshalChunkLink deserializes a ChunkLink from bytes.
func UnmarshalChunkLink(data []byte) (*core.ChunkLink, error) {
	link, _, err := core.ChunkLinkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// MarshalParentChunk serializes a ParentChunk to bytes.
func MarshalParentChunk(chunk *core.ParentChunk) []byte {
	buf := make([]byte, core.ParentChunkMUS.Size(*chunk))
	core.ParentChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalParentChunk deserializes a ParentChunk from bytes.
func UnmarshalParentChunk(data []byte) (*core.ParentChunk, error) {
	chunk, _, err := core.ParentChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}
