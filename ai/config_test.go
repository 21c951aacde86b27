package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, "http://localhost:11434", cfg.Host)
		assert.Equal(t, "nomic-embed-text:v1.5", cfg.EmbeddingModel)
		assert.NotEmpty(t, cfg.GenerationModels)
		assert.Equal(t, "llama3.2:3b", cfg.GenerationModels[0])
	})

	t.Run("options override defaults", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://ollama.internal:11434/"),
			WithEmbeddingModel("mxbai-embed-large"),
			WithGenerationModels("llama3"),
			WithEmbedTimeout(5*time.Second),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://ollama.internal:11434", cfg.Host)
		assert.Equal(t, "mxbai-embed-large", cfg.EmbeddingModel)
		assert.Equal(t, []string{"llama3"}, cfg.GenerationModels)
		assert.Equal(t, 5*time.Second, cfg.EmbedTimeout)
	})
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.Host = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"empty model chain", func(c *Config) { c.GenerationModels = nil }},
		{"zero timeout", func(c *Config) { c.EmbedTimeout = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
