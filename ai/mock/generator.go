package mock

import (
	"context"
	"fmt"
	"hash/fnv"
)

// Generator is a test double for ai.Generator.
// Custom behavior is injected via the function field.
type Generator struct {
	// GenerateFunc is called by Generate if set.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewGenerator creates a mock generator with deterministic default behavior.
// Returns the concrete type so tests can inject behavior and assert calls.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a deterministic completion derived from the prompt hash.
func (m *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}

	h := fnv.New32a()
	h.Write([]byte(prompt))
	return fmt.Sprintf("mock completion %08x", h.Sum32()), nil
}

// CallCount returns how many times Generate was called.
func (m *Generator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *Generator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
