package mock

import (
	"github.com/r-yashaswini/job-recommender-system/ai"
)

// Provider is a test double for ai.Provider bundling the mock services.
type Provider struct {
	embedder  *Embedder
	generator *Generator
}

// NewProvider creates a provider backed by deterministic mocks.
func NewProvider() ai.Provider {
	return &Provider{
		embedder:  NewEmbedder(),
		generator: NewGenerator(),
	}
}

// Embedder returns the mock embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close is a no-op for mocks.
func (p *Provider) Close() error {
	return nil
}

// GetMockEmbedder exposes the concrete embedder for test assertions.
func (p *Provider) GetMockEmbedder() *Embedder {
	return p.embedder
}

// GetMockGenerator exposes the concrete generator for test assertions.
func (p *Provider) GetMockGenerator() *Generator {
	return p.generator
}
