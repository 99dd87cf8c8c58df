package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/docquery/core"
)

// Key prefixes for different data types
const (
	vectorRecordPrefix = "vecrec"
	chunkLinkPrefix    = "chlink"
	parentChunkPrefix  = "parchk"
	ownerVersionPrefix = "ownver"
)

// makeVectorRecordKey generates a key for a vector record by namespace and id.
// Format: prefix:namespace:vectorID
func makeVectorRecordKey(namespace, vectorID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", vectorRecordPrefix, namespace, vectorID))
}

// makeVectorNamespacePrefix generates the iteration prefix for a namespace.
func makeVectorNamespacePrefix(namespace string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", vectorRecordPrefix, namespace))
}

// makeChunkLinkKey generates a composite key for the parent link index.
// Format: prefix:parentID:vectorID
// The parent id is written BigEndian so links for one parent are contiguous.
func makeChunkLinkKey(parentID core.ParentID, vectorID string) []byte {
	prefix := chunkLinkPrefix + ":"
	buf := make([]byte, len(prefix)+8+len(vectorID))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(parentID))
	offset += 8
	copy(buf[offset:], vectorID)
	return buf
}

// makePartialChunkLinkKey generates a partial key for listing one parent's links.
func makePartialChunkLinkKey(parentID core.ParentID) []byte {
	prefix := chunkLinkPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(parentID))
	return buf
}

// makeParentChunkKey generates a key for a retained original chunk text.
func makeParentChunkKey(key string) []byte {
	return []byte(fmt.Sprintf("%s:%s", parentChunkPrefix, key))
}

// makeOwnerVersionKey generates a key for an owner's version counter.
func makeOwnerVersionKey(ownerKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s", ownerVersionPrefix, ownerKey))
}
