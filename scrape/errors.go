package scrape

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

	// ErrNilRepository indicates the runner was constructed without a store.
	ErrNilRepository = errors.New("repository cannot be nil")

	// ErrNoScrapers indicates the runner was constructed without scrapers.
	ErrNoScrapers = errors.New("at least one scraper is required")

	// ErrPageUnavailable indicates a page could not be fetched after retries.
	ErrPageUnavailable = errors.New("page unavailable")
)
