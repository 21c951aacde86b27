package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-yashaswini/job-recommender-system/ai/mock"
	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/search"
	badgerstore "github.com/r-yashaswini/job-recommender-system/storage/badger"
	"github.com/r-yashaswini/job-recommender-system/storage/memory"
)

type stubSource struct {
	recipients []*Recipient
	err        error
}

func (s *stubSource) Recipients(ctx context.Context) ([]*Recipient, error) {
	return s.recipients, s.err
}

type captureSender struct {
	sent map[string][]*core.ScoredJob
	err  error
}

func newCaptureSender() *captureSender {
	return &captureSender{sent: make(map[string][]*core.ScoredJob)}
}

func (s *captureSender) Send(ctx context.Context, recipient *Recipient, jobs []*core.ScoredJob) error {
	if s.err != nil {
		return s.err
	}
	s.sent[recipient.Email] = jobs
	return nil
}

func seededSearcher(t *testing.T, n int) *search.Searcher {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	t.Cleanup(func() { repo.Close() })

	for i := 0; i < n; i++ {
		url := fmt.Sprintf("https://site.example/%d", i)
		_, err := repo.AddJobs(ctx, &core.Job{
			Title:       fmt.Sprintf("Backend Developer %d", i),
			Description: "Python and SQL",
			Location:    "Bangalore",
			Experience:  "Freshers",
			ListingURL:  url,
			ApplyURL:    url,
			Source:      "test",
		})
		require.NoError(t, err)
	}
	pending, err := repo.PendingEnrichment(ctx, n)
	require.NoError(t, err)
	for _, job := range pending {
		require.NoError(t, repo.SetEnrichment(ctx, job.Id, []float32{1, 0}, "Backend Developer"))
	}

	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	searcher, err := search.NewSearcher(repo, embedder)
	require.NoError(t, err)
	return searcher
}

func testRecipient() *Recipient {
	return &Recipient{
		Email:    "dev@example.com",
		Name:     "Dev",
		Role:     "backend",
		Location: "Bangalore",
		Skills:   []string{"python", "sql"},
	}
}

func TestNotifierRun(t *testing.T) {
	ctx := context.Background()

	t.Run("sends fresh matches once", func(t *testing.T) {
		ledger, err := badgerstore.Open("", true)
		require.NoError(t, err)
		defer ledger.Close()

		sender := newCaptureSender()
		n, err := NewNotifier(seededSearcher(t, 3),
			&stubSource{recipients: []*Recipient{testRecipient()}},
			sender, ledger, nil)
		require.NoError(t, err)

		sent, err := n.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, sender.sent["dev@example.com"], 3)

		// second scan: everything in the ledger, nothing sent
		sent, err = n.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("delivery failure skips ledger write", func(t *testing.T) {
		ledger, err := badgerstore.Open("", true)
		require.NoError(t, err)
		defer ledger.Close()

		sender := newCaptureSender()
		sender.err = errors.New("smtp down")

		n, err := NewNotifier(seededSearcher(t, 2),
			&stubSource{recipients: []*Recipient{testRecipient()}},
			sender, ledger, nil)
		require.NoError(t, err)

		sent, err := n.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)

		// retry succeeds and still sees the jobs
		sender.err = nil
		sent, err = n.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("source failure", func(t *testing.T) {
		n, err := NewNotifier(seededSearcher(t, 1),
			&stubSource{err: errors.New("users table gone")},
			newCaptureSender(), nil, nil)
		require.NoError(t, err)

		_, err = n.Run(ctx)
		assert.Error(t, err)
	})
}

func TestBuildQuery(t *testing.T) {
	t.Run("full preferences", func(t *testing.T) {
		query, filters := buildQuery(testRecipient())
		assert.Equal(t, "backend jobs in Bangalore using python, sql", query)
		assert.Equal(t, "Bangalore", filters.Location)
		assert.Equal(t, "backend", filters.RoleType)
		assert.True(t, filters.ResumeSkills.Contains("python"))
	})

	t.Run("skills capped at three", func(t *testing.T) {
		r := testRecipient()
		r.Skills = []string{"a", "b", "c", "d"}
		query, _ := buildQuery(r)
		assert.Contains(t, query, "using a, b, c")
		assert.NotContains(t, query, ", d")
	})

	t.Run("empty preferences fall back", func(t *testing.T) {
		query, filters := buildQuery(&Recipient{Email: "x@example.com"})
		assert.Equal(t, "software jobs", query)
		assert.Empty(t, filters.Location)
	})
}

func TestBuildBody(t *testing.T) {
	jobs := []*core.ScoredJob{{
		Job: core.Job{
			Title:      "Backend Developer",
			Location:   "Bangalore",
			Experience: "Freshers",
			ApplyURL:   "https://careers.example/1",
		},
		FinalScore:    0.9,
		MatchedSkills: []string{"python"},
	}}

	body := buildBody(testRecipient(), jobs)
	assert.Contains(t, body, "Hi Dev!")
	assert.Contains(t, body, "Backend Developer")
	assert.Contains(t, body, "90%")
	assert.Contains(t, body, "python")
	assert.Contains(t, body, "https://careers.example/1")
}
