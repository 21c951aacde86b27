// Package summarize turns a ranked result list into a short natural-language
// answer. Generation failure never reaches the consumer: a deterministic
// template built from the top result takes over.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/r-yashaswini/job-recommender-system/ai"
	"github.com/r-yashaswini/job-recommender-system/classify"
	"github.com/r-yashaswini/job-recommender-system/core"
)

const (
	// promptJobs is how many ranked jobs the prompt describes.
	promptJobs = 5

	// descriptionSnippet bounds each job's description in the prompt.
	descriptionSnippet = 200
)

// Summarizer generates answer text for ranked search results. It satisfies
// the search package's Responder interface.
type Summarizer struct {
	generator ai.Generator
	logger    *slog.Logger
}

// New creates a summarizer over the generation service.
func New(generator ai.Generator, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default().With("component", "summarizer")
	}
	return &Summarizer{
		generator: generator,
		logger:    logger,
	}
}

// Respond builds the prompt and asks the generation service for an answer.
// When the service fails entirely, the deterministic fallback text is
// returned instead; the result is always non-empty.
func (s *Summarizer) Respond(ctx context.Context, query string, userSkills core.SkillSet, jobs []*core.ScoredJob) string {
	if len(jobs) == 0 {
		return "No matching jobs to summarize."
	}

	prompt := buildPrompt(query, userSkills, jobs)

	if s.generator != nil {
		answer, err := s.generator.Generate(ctx, prompt)
		if err == nil {
			return answer
		}
		s.logger.Warn("generation failed, using fallback text", "err", err)
	}

	return fallbackText(jobs)
}

// buildPrompt describes the top jobs, the user's skills and the skills
// those jobs ask for that the user lacks.
func buildPrompt(query string, userSkills core.SkillSet, jobs []*core.ScoredJob) string {
	top := jobs
	if len(top) > promptJobs {
		top = top[:promptJobs]
	}

	var b strings.Builder
	b.WriteString("Based on these job listings, answer the user's query:\n\n")
	fmt.Fprintf(&b, "Query: %s\n\n", query)
	b.WriteString("Job Listings:\n")

	missing := make(core.SkillSet)
	for i, job := range top {
		fmt.Fprintf(&b, "Job %d: %s - %s in %s (%s) - %s\n",
			i+1, job.Title, job.Role, job.Location, job.Experience,
			snippet(job.Description))

		for skill := range classify.ExtractSkills(job.Title + " " + job.Description) {
			if !userSkills.Contains(skill) {
				missing.Add(skill)
			}
		}
	}

	if len(userSkills) > 0 {
		fmt.Fprintf(&b, "\nUser's skills: %s\n", strings.Join(userSkills.Sorted(), ", "))
	}
	if len(missing) > 0 {
		fmt.Fprintf(&b, "Skills in these jobs the user lacks: %s\n", strings.Join(missing.Sorted(), ", "))
	}

	b.WriteString("\nAnswer:")
	return b.String()
}

// fallbackText builds the deterministic answer from the top result.
func fallbackText(jobs []*core.ScoredJob) string {
	top := jobs[0]
	text := fmt.Sprintf("Found %d matching jobs. Top match: %s (%.0f%% match)",
		len(jobs), top.Title, top.FinalScore*100)
	if len(top.MatchedSkills) > 0 {
		text += fmt.Sprintf(", matching your skills: %s", strings.Join(top.MatchedSkills, ", "))
	}
	return text + "."
}

func snippet(description string) string {
	if len(description) <= descriptionSnippet {
		return description
	}
	return description[:descriptionSnippet] + "..."
}
