package vectorstore

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorRepositoryRequired is returned when a vector repository is not provided.
	ErrVectorRepositoryRequired = errors.New("vector repository required")

	// ErrEmptyNamespace is returned when the index namespace is empty.
	ErrEmptyNamespace = errors.New("index namespace required")
)
