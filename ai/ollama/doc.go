// Package ollama implements the ai interfaces against a local Ollama server.
//
// Embeddings use a single fixed model. Generation walks the configured model
// fallback chain in order, so a machine that only has an older llama pulled
// still produces summaries.
package ollama
