package ingestion

import "errors"

var (
	// ErrRepositoryRequired indicates the pipeline needs a job repository.
	ErrRepositoryRequired = errors.New("job repository is required")

	// ErrRunnerRequired indicates the pipeline needs a scrape runner.
	ErrRunnerRequired = errors.New("scrape runner is required")

	// ErrEmbedderRequired indicates the enricher needs an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
)
