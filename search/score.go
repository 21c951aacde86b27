package search

import (
	"github.com/r-yashaswini/job-recommender-system/classify"
	"github.com/r-yashaswini/job-recommender-system/core"
)

const (
	// degradedVectorScore stands in for every candidate's vector score when
	// the query could not be embedded.
	degradedVectorScore = 0.1

	// maxFinalScore caps reported scores; a match is never presented as
	// certain.
	maxFinalScore = 0.90

	titleMatchWeight = 0.6
	roleMatchWeight  = 0.5
	vectorHintWeight = 0.3

	skillScoreWeight   = 0.4
	jobCoverageWeight  = 0.8
	userCoverageWeight = 0.2
	noOverlapPenalty   = 0.3
)

// scoreCandidate computes the transient scoring fields for one candidate.
// vectorScore is the similarity from the store, or the degraded constant.
func scoreCandidate(job *core.Job, vectorScore float64, filters core.SearchFilters, userSkills core.SkillSet) *core.ScoredJob {
	scored := &core.ScoredJob{
		Job:         *job,
		VectorScore: vectorScore,
	}

	if filters.RoleType != "" {
		scored.TitleMatch = containsFold(job.Title, filters.RoleType)
		scored.RoleMatch = containsFold(job.Role, filters.RoleType)
		scored.FinalScore = titleMatchWeight*boolScore(scored.TitleMatch) +
			roleMatchWeight*boolScore(scored.RoleMatch) +
			vectorHintWeight*vectorScore
	} else {
		scored.FinalScore = vectorScore
	}

	if len(userSkills) > 0 {
		jobSkills := classify.ExtractSkills(job.Title + " " + job.Description)
		matched := jobSkills.Intersect(userSkills)
		scored.MatchedSkills = matched.Sorted()

		// Coverage of the job's requirements dominates; coverage of the
		// user's skill set only nudges.
		skillScore := 0.0
		if len(jobSkills) > 0 {
			skillScore += jobCoverageWeight * float64(len(matched)) / float64(len(jobSkills))
		}
		skillScore += userCoverageWeight * float64(len(matched)) / float64(len(userSkills))
		if skillScore > 1 {
			skillScore = 1
		}
		scored.SkillScore = skillScore

		scored.FinalScore += skillScoreWeight * skillScore
		if len(matched) == 0 {
			scored.FinalScore -= noOverlapPenalty
		}
	}

	if scored.FinalScore > maxFinalScore {
		scored.FinalScore = maxFinalScore
	}

	return scored
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
