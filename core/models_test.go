package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("jobsnet|https://jobsnet.in/some-job/")
		b := IDFromContent("jobsnet|https://jobsnet.in/some-job/")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content yields distinct ids", func(t *testing.T) {
		a := IDFromContent("jobsnet|https://jobsnet.in/some-job/")
		b := IDFromContent("freshersnow|https://jobsnet.in/some-job/")
		assert.NotEqual(t, a, b)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		job := &Job{
			Title:      "  Backend Developer  ",
			ListingURL: "https://example.com/job/1",
		}
		Normalize(job)

		assert.Equal(t, "Backend Developer", job.Title)
		assert.Equal(t, DefaultLocation, job.Location)
		assert.Equal(t, DefaultExperience, job.Experience)
		assert.Equal(t, DefaultDescription, job.Description)
		assert.Equal(t, job.ListingURL, job.ApplyURL)
	})

	t.Run("keeps populated fields", func(t *testing.T) {
		job := &Job{
			Title:       "Data Engineer",
			Location:    "Bangalore",
			Experience:  "2-4 years",
			Description: "Build pipelines.",
			ListingURL:  "https://example.com/job/2",
			ApplyURL:    "https://careers.example.com/2",
		}
		Normalize(job)

		assert.Equal(t, "Bangalore", job.Location)
		assert.Equal(t, "2-4 years", job.Experience)
		assert.Equal(t, "Build pipelines.", job.Description)
		assert.Equal(t, "https://careers.example.com/2", job.ApplyURL)
	})
}

func TestSkillSet(t *testing.T) {
	s := NewSkillSet("Python", " SQL ", "")
	assert.Len(t, s, 2)
	assert.True(t, s.Contains("python"))
	assert.True(t, s.Contains("SQL"))
	assert.False(t, s.Contains("java"))

	other := NewSkillSet("sql", "aws")
	both := s.Intersect(other)
	assert.Equal(t, []string{"sql"}, both.Sorted())
}

func TestJobEnriched(t *testing.T) {
	job := &Job{Title: "SRE"}
	assert.False(t, job.Enriched())

	job.Embedding = []float32{0.1, 0.2}
	assert.False(t, job.Enriched())

	job.Role = "Software Engineer"
	assert.True(t, job.Enriched())
}
