// Package storage defines the persistence contracts for the recommender.
//
// JobRepository is the single interface the pipeline and searcher depend on.
// Backend sub-packages provide implementations:
//
//   - storage/postgres: production repository on pgx with pgvector similarity
//   - storage/memory: mutex-guarded in-memory repository for tests
//   - storage/badger: SeenStore, the small cross-run key/value side store
//
// Candidate retrieval is filter-plus-similarity only; the scoring that ranks
// candidates lives in the search package, not here.
package storage
