// Package storage defines the persistence interfaces for the vector index,
// chunk links, the parent chunk store, and per-owner version counters.
//
// Implementations live in subpackages (currently storage/badger) and must
// be safe for concurrent use: ingestion workers and query sessions read and
// write the same repositories without external locking.
package storage
