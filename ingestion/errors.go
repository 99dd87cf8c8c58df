package ingestion

import "errors"

var (
	// ErrSplitterRequired is returned when a splitter is not provided.
	ErrSplitterRequired = errors.New("splitter required")

	// ErrStoreRequired is returned when an embedding store is not provided.
	ErrStoreRequired = errors.New("embedding store required")

	// ErrLinkRepositoryRequired is returned when a link repository is not provided.
	ErrLinkRepositoryRequired = errors.New("link repository required")

	// ErrParentChunkRepositoryRequired is returned when a parent chunk repository is not provided.
	ErrParentChunkRepositoryRequired = errors.New("parent chunk repository required")

	// ErrQueueStopped is returned when enqueueing after Stop.
	ErrQueueStopped = errors.New("ingestion queue stopped")
)
