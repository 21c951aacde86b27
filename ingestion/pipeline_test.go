package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-yashaswini/job-recommender-system/ai/mock"
	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage/memory"
)

type stubRunner struct {
	inserted int
	err      error
	calls    int
}

func (s *stubRunner) Run(ctx context.Context) (int, error) {
	s.calls++
	return s.inserted, s.err
}

func seedJobs(t *testing.T, repo *memory.Repository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		url := "https://site.example/" + string(rune('a'+i))
		_, err := repo.AddJobs(context.Background(), &core.Job{
			Title:       "Backend Developer",
			Description: "Build APIs with Python and SQL",
			ListingURL:  url,
			ApplyURL:    url,
			Source:      "test",
		})
		require.NoError(t, err)
	}
}

func TestEnricherRun(t *testing.T) {
	ctx := context.Background()

	t.Run("enriches pending rows", func(t *testing.T) {
		repo := memory.New()
		defer repo.Close()
		seedJobs(t, repo, 3)

		enricher, err := NewEnricher(repo, mock.NewEmbedder())
		require.NoError(t, err)

		enriched, err := enricher.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, enriched)

		pending, err := repo.PendingEnrichment(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("failed rows stay pending", func(t *testing.T) {
		repo := memory.New()
		defer repo.Close()
		seedJobs(t, repo, 2)

		embedder := mock.NewEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("service down")
		}

		enricher, err := NewEnricher(repo, embedder)
		require.NoError(t, err)

		enriched, err := enricher.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, enriched)

		pending, err := repo.PendingEnrichment(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("nothing pending", func(t *testing.T) {
		repo := memory.New()
		defer repo.Close()

		enricher, err := NewEnricher(repo, mock.NewEmbedder())
		require.NoError(t, err)

		enriched, err := enricher.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, enriched)
	})
}

func TestNewEnricherValidation(t *testing.T) {
	assert.ErrorIs(t, func() error {
		_, err := NewEnricher(nil, mock.NewEmbedder())
		return err
	}(), ErrRepositoryRequired)

	assert.ErrorIs(t, func() error {
		_, err := NewEnricher(memory.New(), nil)
		return err
	}(), ErrEmbedderRequired)
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()

	newPipeline := func(t *testing.T, runner ScrapeRunner, repo *memory.Repository) *Pipeline {
		t.Helper()
		enricher, err := NewEnricher(repo, mock.NewEmbedder())
		require.NoError(t, err)
		p, err := NewPipeline(runner, enricher, nil)
		require.NoError(t, err)
		return p
	}

	t.Run("full cycle", func(t *testing.T) {
		repo := memory.New()
		defer repo.Close()
		seedJobs(t, repo, 2)

		p := newPipeline(t, &stubRunner{inserted: 2}, repo)
		require.NoError(t, p.Run(ctx))
		assert.Equal(t, Idle, p.State())

		pending, err := repo.PendingEnrichment(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("zero scraped skips enrichment", func(t *testing.T) {
		repo := memory.New()
		defer repo.Close()
		seedJobs(t, repo, 1)

		p := newPipeline(t, &stubRunner{inserted: 0}, repo)
		require.NoError(t, p.Run(ctx))

		// the pending row was not touched
		pending, err := repo.PendingEnrichment(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})

	t.Run("scrape failure aborts", func(t *testing.T) {
		repo := memory.New()
		defer repo.Close()

		p := newPipeline(t, &stubRunner{err: errors.New("all sites down")}, repo)
		assert.Error(t, p.Run(ctx))
		assert.Equal(t, Idle, p.State())
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "scraping", Scraping.String())
	assert.Equal(t, "enriching", Enriching.String())
}
