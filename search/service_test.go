package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage/memory"
)

type stubResponder struct {
	text string
}

func (s *stubResponder) Respond(ctx context.Context, query string, userSkills core.SkillSet, jobs []*core.ScoredJob) string {
	return s.text
}

func TestServiceAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("results with responder", func(t *testing.T) {
		repo := seedRepo(t,
			[]*core.Job{job("Backend Developer", "Python", "Remote", "Freshers", 1)},
			[][]float32{{1, 0}})
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		svc, err := NewService(searcher, &stubResponder{text: "summary text"}, nil)
		require.NoError(t, err)

		resp := svc.Answer(ctx, "python", core.SearchFilters{}, 5)
		assert.Equal(t, "summary text", resp.Response)
		require.Len(t, resp.Jobs, 1)
	})

	t.Run("empty results", func(t *testing.T) {
		repo := memory.New()
		defer repo.Close()
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		svc, err := NewService(searcher, &stubResponder{text: "unused"}, nil)
		require.NoError(t, err)

		resp := svc.Answer(ctx, "python", core.SearchFilters{}, 5)
		assert.Equal(t, noResultsResponse, resp.Response)
		assert.Empty(t, resp.Jobs)
	})

	t.Run("store failure is explained, not raised", func(t *testing.T) {
		repo := memory.New()
		require.NoError(t, repo.Close())

		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		svc, err := NewService(searcher, nil, nil)
		require.NoError(t, err)

		resp := svc.Answer(ctx, "python", core.SearchFilters{}, 5)
		assert.Contains(t, resp.Response, "Error:")
		assert.Empty(t, resp.Jobs)
	})

	t.Run("nil responder falls back to count", func(t *testing.T) {
		repo := seedRepo(t,
			[]*core.Job{job("Backend Developer", "Python", "Remote", "Freshers", 2)},
			[][]float32{{1, 0}})
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		svc, err := NewService(searcher, nil, nil)
		require.NoError(t, err)

		resp := svc.Answer(ctx, "python", core.SearchFilters{}, 5)
		assert.Equal(t, "Found 1 matching jobs based on your query.", resp.Response)
	})
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(nil, nil, nil)
	assert.ErrorIs(t, err, ErrSearcherRequired)
}
