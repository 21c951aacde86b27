package search

import "errors"

var (
	// ErrRepositoryRequired indicates the searcher needs a job repository.
	ErrRepositoryRequired = errors.New("job repository is required")

	// ErrEmbedderRequired indicates the searcher needs an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrSearcherRequired indicates the service needs a searcher.
	ErrSearcherRequired = errors.New("searcher is required")
)
