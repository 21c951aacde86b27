// Package ai defines the abstractions for the model services the recommender
// depends on: text embedding and free-text generation.
//
// The package defines three interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - Generator: produces free-text completions from a prompt
//   - Provider: aggregates both for convenient initialization
//
// Two implementation sub-packages exist:
//
//   - ai/ollama: production implementation against a local Ollama server
//   - ai/mock: deterministic test doubles, no external services
//
// Production constructors return interface types to keep callers decoupled
// from the backing service; mock constructors return concrete types so tests
// can inject behavior and assert call counts.
package ai
