package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-yashaswini/job-recommender-system/ai/mock"
	"github.com/r-yashaswini/job-recommender-system/core"
)

func rankedJobs() []*core.ScoredJob {
	return []*core.ScoredJob{
		{
			Job: core.Job{
				Title:       "Backend Developer",
				Role:        "Backend Developer",
				Location:    "Bangalore",
				Experience:  "Freshers",
				Description: "Build APIs with Python, SQL and Docker",
			},
			FinalScore:    0.9,
			MatchedSkills: []string{"python", "sql"},
		},
		{
			Job: core.Job{
				Title:       "Data Engineer",
				Role:        "Data Engineer",
				Location:    "Pune",
				Experience:  "Freshers",
				Description: "Spark and Airflow pipelines",
			},
			FinalScore: 0.7,
		},
	}
}

func TestRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("uses generated answer", func(t *testing.T) {
		generator := mock.NewGenerator()
		generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "Backend Developer")
			assert.Contains(t, prompt, "Query: python jobs")
			return "Here are your matches.", nil
		}

		s := New(generator, nil)
		got := s.Respond(ctx, "python jobs", core.NewSkillSet("python"), rankedJobs())
		assert.Equal(t, "Here are your matches.", got)
	})

	t.Run("fallback on total generation failure", func(t *testing.T) {
		generator := mock.NewGenerator()
		generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("every model failed")
		}

		s := New(generator, nil)
		got := s.Respond(ctx, "python jobs", nil, rankedJobs())
		assert.NotEmpty(t, got)
		assert.Contains(t, got, "Backend Developer")
		assert.Contains(t, got, "90% match")
		assert.Contains(t, got, "python, sql")
	})

	t.Run("no jobs", func(t *testing.T) {
		s := New(mock.NewGenerator(), nil)
		assert.NotEmpty(t, s.Respond(ctx, "query", nil, nil))
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("mentions missing skills", func(t *testing.T) {
		prompt := buildPrompt("python jobs", core.NewSkillSet("python"), rankedJobs())
		require.Contains(t, prompt, "User's skills: python")
		// docker, sql, spark, airflow appear in jobs but not in the user's set
		assert.Contains(t, prompt, "the user lacks:")
		assert.Contains(t, prompt, "docker")
		assert.NotContains(t, strings.Split(prompt, "lacks:")[1], "python,")
	})

	t.Run("caps listed jobs", func(t *testing.T) {
		var jobs []*core.ScoredJob
		for i := 0; i < 8; i++ {
			jobs = append(jobs, &core.ScoredJob{Job: core.Job{Title: "Job"}})
		}
		prompt := buildPrompt("q", nil, jobs)
		assert.Contains(t, prompt, "Job 5:")
		assert.NotContains(t, prompt, "Job 6:")
	})

	t.Run("truncates long descriptions", func(t *testing.T) {
		jobs := []*core.ScoredJob{{Job: core.Job{
			Title:       "X",
			Description: strings.Repeat("a", 400),
		}}}
		prompt := buildPrompt("q", nil, jobs)
		assert.Contains(t, prompt, strings.Repeat("a", 200)+"...")
		assert.NotContains(t, prompt, strings.Repeat("a", 201))
	})
}
