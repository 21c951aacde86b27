package storage

import (
	"context"

	"github.com/r-yashaswini/job-recommender-system/core"
)

// CandidateQuery selects scoring candidates from the store. Only rows with an
// embedding qualify, even when Vector is nil. All filter values are bound as
// parameters by implementations, never interpolated.
type CandidateQuery struct {
	// Vector is the query embedding. When nil the store cannot order by
	// similarity and falls back to recency ordering.
	Vector []float32

	// Location, when non-empty, keeps rows whose location contains it
	// case-insensitively.
	Location string

	// Experience, when non-empty, keeps rows whose experience field contains
	// any of its expanded aliases. See ExpandExperience.
	Experience string

	// Limit caps the number of returned candidates.
	Limit int
}

// Candidate is a job plus its raw similarity to the query vector.
type Candidate struct {
	Job        *core.Job
	Similarity float64 // 1 - cosine distance; 0 when the query had no vector
}

// JobRepository provides the persistence operations of the recommender.
// Implementations must be safe for concurrent use.
type JobRepository interface {
	// AddJobs appends scraped jobs to the store. Rows whose dedup identity
	// (source, listing URL, apply URL) already exists are silently skipped.
	// Returns the number of rows actually inserted.
	AddJobs(ctx context.Context, jobs ...*core.Job) (int, error)

	// PendingEnrichment returns up to limit jobs still missing an embedding
	// or a role label, oldest first.
	PendingEnrichment(ctx context.Context, limit int) ([]*core.Job, error)

	// SetEnrichment stores the embedding and role for one job and stamps
	// its updated time. Returns ErrNotFound for an unknown id.
	SetEnrichment(ctx context.Context, id int64, vector []float32, role string) error

	// Candidates retrieves scoring candidates matching the query, ordered by
	// similarity descending (recency descending when the query has no
	// vector). Returns at most query.Limit rows.
	Candidates(ctx context.Context, query CandidateQuery) ([]*Candidate, error)

	// CountJobs reports the total number of stored jobs.
	CountJobs(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
