package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/r-yashaswini/job-recommender-system/ai"
	"github.com/r-yashaswini/job-recommender-system/classify"
	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage"
)

const (
	// DefaultLimit applies when callers pass a non-positive limit.
	DefaultLimit = 20

	// candidateMultiplier over-fetches so re-ranking has headroom.
	candidateMultiplier = 3
)

// Searcher ranks stored jobs against a free-text query plus filters.
type Searcher struct {
	repo     storage.JobRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher over the repository and embedder.
func NewSearcher(repo storage.JobRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		repo:     repo,
		embedder: embedder,
		logger:   slog.Default().With("component", "searcher"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search returns up to limit jobs ranked for the query.
//
// An embedding failure does not abort the search: every candidate gets a
// constant low vector score and candidates arrive in recency order instead
// of similarity order. Jobs without an embedding never surface either way.
// An unreachable store is an error; an empty result is not.
func (s *Searcher) Search(ctx context.Context, query string, filters core.SearchFilters, limit int) ([]*core.ScoredJob, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	degraded := err != nil
	if degraded {
		s.logger.Warn("query embedding failed, degrading to constant vector score", "err", err)
		vector = nil
	}

	candidates, err := s.repo.Candidates(ctx, storage.CandidateQuery{
		Vector:     vector,
		Location:   filters.Location,
		Experience: filters.Experience,
		Limit:      limit * candidateMultiplier,
	})
	if err != nil {
		s.logger.Error("candidate retrieval failed", "err", err)
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	userSkills := filters.ResumeSkills
	if len(userSkills) == 0 {
		userSkills = classify.ExtractSkills(query)
	}

	scored := make([]*core.ScoredJob, 0, len(candidates))
	for _, candidate := range candidates {
		vectorScore := candidate.Similarity
		if degraded {
			vectorScore = degradedVectorScore
		}
		scored = append(scored, scoreCandidate(candidate.Job, vectorScore, filters, userSkills))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	s.logger.Debug("search completed", "query", query, "results", len(scored), "degraded", degraded)
	return scored, nil
}
