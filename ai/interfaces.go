package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in one call.
	// The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a free-text completion for a prompt.
// Implementations must be safe for concurrent use.
type Generator interface {
	// Generate returns the model's completion for the prompt.
	// An empty completion is reported as an error so callers can fall back
	// to templated output.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates the model services behind one lifecycle.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
