// Package memory implements storage.JobRepository in process memory. It
// backs tests and local experiments; similarity is a full cosine scan, which
// is fine at that scale.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage"
)

// Repository is a mutex-guarded in-memory job store.
type Repository struct {
	mu     sync.RWMutex
	jobs   []*core.Job
	seen   map[core.ID]struct{}
	nextID int64
	closed bool
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{
		seen:   make(map[core.ID]struct{}),
		nextID: 1,
	}
}

// AddJobs appends jobs, skipping rows whose dedup identity already exists.
func (r *Repository) AddJobs(ctx context.Context, jobs ...*core.Job) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, storage.ErrStorageClosed
	}

	inserted := 0
	now := time.Now()
	for _, job := range jobs {
		key := job.DedupKey()
		if _, dup := r.seen[key]; dup {
			continue
		}
		r.seen[key] = struct{}{}

		stored := *job
		stored.Id = r.nextID
		r.nextID++
		stored.InsertedAt = now
		stored.UpdatedAt = now
		r.jobs = append(r.jobs, &stored)
		inserted++
	}
	return inserted, nil
}

// PendingEnrichment returns jobs missing an embedding or role, oldest first.
func (r *Repository) PendingEnrichment(ctx context.Context, limit int) ([]*core.Job, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, storage.ErrStorageClosed
	}

	var pending []*core.Job
	for _, job := range r.jobs {
		if job.Enriched() {
			continue
		}
		copied := *job
		pending = append(pending, &copied)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

// SetEnrichment stores the embedding and role for one job.
func (r *Repository) SetEnrichment(ctx context.Context, id int64, vector []float32, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return storage.ErrStorageClosed
	}

	for _, job := range r.jobs {
		if job.Id == id {
			job.Embedding = append([]float32(nil), vector...)
			job.Role = role
			job.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: job %d", storage.ErrNotFound, id)
}

// Candidates scans all embedded jobs, applies the filters and returns the
// top matches ordered by cosine similarity (recency when the query carries
// no vector).
func (r *Repository) Candidates(ctx context.Context, query storage.CandidateQuery) ([]*storage.Candidate, error) {
	if query.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, storage.ErrStorageClosed
	}

	aliases := storage.ExpandExperience(query.Experience)

	var candidates []*storage.Candidate
	for _, job := range r.jobs {
		if len(job.Embedding) == 0 {
			continue
		}
		if query.Location != "" &&
			!strings.Contains(strings.ToLower(job.Location), strings.ToLower(query.Location)) {
			continue
		}
		if len(aliases) > 0 && !matchesAny(job.Experience, aliases) {
			continue
		}

		similarity := 0.0
		if query.Vector != nil {
			similarity = cosineSimilarity(query.Vector, job.Embedding)
		}
		copied := *job
		candidates = append(candidates, &storage.Candidate{Job: &copied, Similarity: similarity})
	}

	if query.Vector != nil {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Similarity > candidates[j].Similarity
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i].Job, candidates[j].Job
			if !a.PostedDate.Equal(b.PostedDate) {
				return a.PostedDate.After(b.PostedDate)
			}
			return a.InsertedAt.After(b.InsertedAt)
		})
	}

	if len(candidates) > query.Limit {
		candidates = candidates[:query.Limit]
	}
	return candidates, nil
}

// CountJobs reports the total number of stored jobs.
func (r *Repository) CountJobs(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return 0, storage.ErrStorageClosed
	}
	return len(r.jobs), nil
}

// Close marks the repository closed. Further calls fail with
// ErrStorageClosed.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func matchesAny(value string, substrings []string) bool {
	lower := strings.ToLower(value)
	for _, s := range substrings {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched dimensions or zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
