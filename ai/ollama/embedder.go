package ollama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/r-yashaswini/job-recommender-system/ai"
)

// Embedder implements ai.Embedder using Ollama's embedding API.
type Embedder struct {
	llm     *ollama.LLM
	timeout timeoutFunc
	logger  *slog.Logger
}

// newEmbedder is the internal constructor returning the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	llm, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama embedding client: %w", err)
	}

	return &Embedder{
		llm:     llm,
		timeout: withTimeout(config.EmbedTimeout),
		logger:  slog.Default().With("component", "ollama-embedder"),
	}, nil
}

// NewEmbedder creates an embedder for the given configuration.
//
// Returns the ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates embeddings for multiple texts in one call.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings", "count", len(texts))

	ctx, cancel := e.timeout(ctx)
	defer cancel()

	vectors, err := e.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		e.logger.Error("embedding generation failed", "count", len(texts), "err", err)
		return nil, fmt.Errorf("creating embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d for %d texts", len(vectors), len(texts))
	}

	return vectors, nil
}
