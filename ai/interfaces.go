package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts. Any provider error fails the whole batch.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces text from a language model.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText performs one synchronous completion round trip.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// StreamText generates a completion, delivering fragments to fn as they
	// become available. Generation stops when fn returns an error or ctx is
	// cancelled; no fragments are delivered after that.
	StreamText(ctx context.Context, prompt string, fn func(ctx context.Context, chunk []byte) error) error
}

// Provider aggregates model services for convenient initialization and
// lifecycle management. The summary generator may be the same handle as the
// primary generator when no dedicated summary model is configured.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the primary language model.
	Generator() Generator

	// SummaryGenerator returns the model used for chunk summarization.
	SummaryGenerator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
