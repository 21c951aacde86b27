package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/r-yashaswini/job-recommender-system/ai"
)

// ErrNoModelAvailable is returned when every model in the fallback chain
// failed to produce a completion.
var ErrNoModelAvailable = errors.New("ollama: no generation model produced a completion")

type timeoutFunc func(context.Context) (context.Context, context.CancelFunc)

func withTimeout(d time.Duration) timeoutFunc {
	return func(ctx context.Context) (context.Context, context.CancelFunc) {
		return context.WithTimeout(ctx, d)
	}
}

// Generator implements ai.Generator by walking a model fallback chain.
type Generator struct {
	llm         *ollama.LLM
	models      []string
	maxTokens   int
	temperature float64
	timeout     timeoutFunc
	logger      *slog.Logger
}

func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// The model is selected per call, so one client serves the whole chain.
	llm, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.GenerationModels[0]),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama generation client: %w", err)
	}

	return &Generator{
		llm:         llm,
		models:      config.GenerationModels,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		timeout:     withTimeout(config.GenerateTimeout),
		logger:      slog.Default().With("component", "ollama-generator"),
	}, nil
}

// NewGenerator creates a generator for the given configuration.
//
// Returns the ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate tries each configured model in order and returns the first
// non-empty completion. A model that errors or returns blank output is
// skipped, not fatal. Context cancellation stops the walk immediately.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range g.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		callCtx, cancel := g.timeout(ctx)
		completion, err := llms.GenerateFromSinglePrompt(callCtx, g.llm, prompt,
			llms.WithModel(model),
			llms.WithMaxTokens(g.maxTokens),
			llms.WithTemperature(g.temperature),
		)
		cancel()

		if err != nil {
			g.logger.Warn("generation model failed, trying next", "model", model, "err", err)
			lastErr = err
			continue
		}

		completion = strings.TrimSpace(completion)
		if completion == "" {
			g.logger.Warn("generation model returned empty completion", "model", model)
			continue
		}

		g.logger.Debug("generation succeeded", "model", model, "length", len(completion))
		return completion, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoModelAvailable, lastErr)
	}
	return "", ErrNoModelAvailable
}
