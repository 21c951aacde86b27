package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/r-yashaswini/job-recommender-system/core"
)

const noResultsResponse = "No relevant jobs found. Try broader search terms."

// Responder turns ranked results into a natural-language answer. The
// summarize package provides the production implementation.
type Responder interface {
	Respond(ctx context.Context, query string, userSkills core.SkillSet, jobs []*core.ScoredJob) string
}

// Service is the consumer-facing query surface. It never returns a raw
// error to the consumer: failures become an explanatory response with an
// empty job list.
type Service struct {
	searcher  *Searcher
	responder Responder
	logger    *slog.Logger
}

// NewService creates the query surface. responder may be nil, in which case
// answers contain only a result count.
func NewService(searcher *Searcher, responder Responder, logger *slog.Logger) (*Service, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if logger == nil {
		logger = slog.Default().With("component", "search-service")
	}

	return &Service{
		searcher:  searcher,
		responder: responder,
		logger:    logger,
	}, nil
}

// Answer runs a search and wraps the outcome in a SearchResponse.
func (s *Service) Answer(ctx context.Context, query string, filters core.SearchFilters, limit int) *core.SearchResponse {
	jobs, err := s.searcher.Search(ctx, query, filters, limit)
	if err != nil {
		s.logger.Error("search failed", "query", query, "err", err)
		return &core.SearchResponse{
			Response: fmt.Sprintf("Error: %s", err),
		}
	}

	if len(jobs) == 0 {
		return &core.SearchResponse{Response: noResultsResponse}
	}

	response := fmt.Sprintf("Found %d matching jobs based on your query.", len(jobs))
	if s.responder != nil {
		userSkills := filters.ResumeSkills
		response = s.responder.Respond(ctx, query, userSkills, jobs)
	}

	return &core.SearchResponse{
		Response: response,
		Jobs:     jobs,
	}
}
