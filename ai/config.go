package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the model services.
type Config struct {
	// Host is the base URL of the Ollama server.
	// Example: "http://localhost:11434"
	Host string

	// EmbeddingModel is the model identifier used for text embeddings.
	EmbeddingModel string

	// GenerationModels is the ordered fallback chain for text generation.
	// Models are tried in order until one produces a non-empty completion.
	GenerationModels []string

	// EmbedTimeout bounds a single embedding call.
	EmbedTimeout time.Duration

	// GenerateTimeout bounds a single generation call. Local models on CPU
	// can take minutes, so this is deliberately generous.
	GenerateTimeout time.Duration

	// MaxTokens caps the length of generated completions.
	MaxTokens int

	// Temperature controls generation randomness.
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the Ollama server URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerationModels replaces the generation fallback chain.
func WithGenerationModels(models ...string) ConfigOption {
	return func(c *Config) {
		c.GenerationModels = models
	}
}

// WithEmbedTimeout sets the per-call embedding timeout.
func WithEmbedTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.EmbedTimeout = d
	}
}

// WithGenerateTimeout sets the per-call generation timeout.
func WithGenerateTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.GenerateTimeout = d
	}
}

// DefaultConfig returns a Config tuned for a local Ollama install.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434",
		EmbeddingModel: "nomic-embed-text:v1.5",
		GenerationModels: []string{
			"llama3.2:3b",
			"llama3.2",
			"llama3:8b",
			"llama3",
			"llama2",
		},
		EmbedTimeout:    30 * time.Second,
		GenerateTimeout: 200 * time.Second,
		MaxTokens:       150,
		Temperature:     0.4,
	}
}

// NewConfig creates a Config with the defaults and applies the options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration into canonical form. Trailing slashes on
// the host confuse the client's URL joining, so they are stripped here.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(strings.TrimSpace(c.Host), "/")
}

// Validate checks that the configuration is complete. It normalizes first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if len(c.GenerationModels) == 0 {
		return errors.New("ai config: at least one generation model is required")
	}
	if c.EmbedTimeout <= 0 || c.GenerateTimeout <= 0 {
		return errors.New("ai config: timeouts must be positive")
	}
	return nil
}
