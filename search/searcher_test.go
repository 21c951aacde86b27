package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-yashaswini/job-recommender-system/ai/mock"
	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage"
	"github.com/r-yashaswini/job-recommender-system/storage/memory"
)

// seedRepo inserts jobs and enriches them with the given vectors.
func seedRepo(t *testing.T, jobs []*core.Job, vectors [][]float32) *memory.Repository {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	t.Cleanup(func() { repo.Close() })

	_, err := repo.AddJobs(ctx, jobs...)
	require.NoError(t, err)

	pending, err := repo.PendingEnrichment(ctx, len(jobs))
	require.NoError(t, err)
	require.Len(t, pending, len(jobs))
	for i, job := range pending {
		if vectors[i] == nil {
			continue // left unembedded on purpose
		}
		role := job.Role
		if role == "" {
			role = "Software Engineer"
		}
		require.NoError(t, repo.SetEnrichment(ctx, job.Id, vectors[i], role))
	}
	return repo
}

func job(title, description, location, experience string, i int) *core.Job {
	url := fmt.Sprintf("https://site.example/%d", i)
	return &core.Job{
		Title:       title,
		Description: description,
		Location:    location,
		Experience:  experience,
		ListingURL:  url,
		ApplyURL:    url,
		Source:      "test",
	}
}

func fixedEmbedder(vector []float32) *mock.Embedder {
	e := mock.NewEmbedder()
	e.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vector, nil
	}
	return e
}

func TestNewSearcher(t *testing.T) {
	t.Run("nil repository", func(t *testing.T) {
		_, err := NewSearcher(nil, mock.NewEmbedder())
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewSearcher(memory.New(), nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestSearchRanking(t *testing.T) {
	ctx := context.Background()

	jobs := []*core.Job{
		job("Backend Developer", "Python and SQL APIs", "Bangalore", "Freshers", 1),
		job("Frontend Developer", "React and TypeScript", "Pune", "Freshers", 2),
		job("Data Engineer", "Spark pipelines", "Bangalore", "2-4 years", 3),
	}
	vectors := [][]float32{{1, 0}, {0.5, 0.5}, {0, 1}}

	t.Run("scores capped and limited", func(t *testing.T) {
		repo := seedRepo(t, jobs, vectors)
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		results, err := searcher.Search(ctx, "python backend developer with sql", core.SearchFilters{}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.LessOrEqual(t, r.FinalScore, 0.90)
		}
		assert.GreaterOrEqual(t, results[0].FinalScore, results[1].FinalScore)
	})

	t.Run("location filter containment", func(t *testing.T) {
		repo := seedRepo(t, jobs, vectors)
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		results, err := searcher.Search(ctx, "developer",
			core.SearchFilters{Location: "bangalore"}, 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		for _, r := range results {
			assert.Contains(t, r.Location, "Bangalore")
		}
	})

	t.Run("skill overlap outranks penalized candidate", func(t *testing.T) {
		// Equal vector scores; A shares skills with the user, B shares none.
		pair := []*core.Job{
			job("Backend Developer", "Python and SQL required", "Remote", "Freshers", 10),
			job("Marketing Executive", "Brand campaigns and outreach", "Remote", "Freshers", 11),
		}
		repo := seedRepo(t, pair, [][]float32{{1, 0}, {1, 0}})
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		results, err := searcher.Search(ctx, "role",
			core.SearchFilters{ResumeSkills: core.NewSkillSet("python", "sql")}, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Backend Developer", results[0].Title)
		assert.Equal(t, []string{"python", "sql"}, results[0].MatchedSkills)
		assert.Greater(t, results[0].FinalScore, results[1].FinalScore)
		// zero overlap takes the flat penalty
		assert.Less(t, results[1].FinalScore, results[1].VectorScore)
	})

	t.Run("role hint formula", func(t *testing.T) {
		pair := []*core.Job{
			job("Backend Developer", "APIs", "Remote", "Freshers", 20),
			job("Accountant", "Ledgers", "Remote", "Freshers", 21),
		}
		repo := seedRepo(t, pair, [][]float32{{0, 1}, {1, 0}})
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		results, err := searcher.Search(ctx, "role",
			core.SearchFilters{RoleType: "backend"}, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)

		// title match (0.6) + role miss + 0.3*vector dominates pure vector
		assert.Equal(t, "Backend Developer", results[0].Title)
		assert.True(t, results[0].TitleMatch)
		assert.InDelta(t, 0.6+0.3*results[0].VectorScore, results[0].FinalScore, 1e-9)
	})

	t.Run("unembedded jobs never surface", func(t *testing.T) {
		mixed := []*core.Job{
			job("Embedded Job", "Python", "Remote", "Freshers", 30),
			job("Unembedded Job", "Python", "Remote", "Freshers", 31),
		}
		repo := seedRepo(t, mixed, [][]float32{{1, 0}, nil})
		searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
		require.NoError(t, err)

		results, err := searcher.Search(ctx, "python", core.SearchFilters{}, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Embedded Job", results[0].Title)
	})
}

func TestSearchDegradedMode(t *testing.T) {
	ctx := context.Background()

	jobs := []*core.Job{
		job("Backend Developer", "Python", "Remote", "Freshers", 40),
		job("Data Engineer", "Spark", "Remote", "Freshers", 41),
	}
	repo := seedRepo(t, jobs, [][]float32{{1, 0}, {0, 1}})

	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	searcher, err := NewSearcher(repo, embedder)
	require.NoError(t, err)

	results, err := searcher.Search(ctx, "anything", core.SearchFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.InDelta(t, 0.1, r.VectorScore, 1e-9)
	}
}

func TestSearchStoreError(t *testing.T) {
	repo := memory.New()
	require.NoError(t, repo.Close()) // closed store fails every query

	searcher, err := NewSearcher(repo, fixedEmbedder([]float32{1, 0}))
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), "query", core.SearchFilters{}, 5)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
