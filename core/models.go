package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Store-assigned for jobs, content-derived for dedup keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces an identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Job represents a single job posting. Scrapers create it, the enrichment
// stage later fills in Embedding and Role.
type Job struct {
	Id          int64
	Title       string
	Role        string // empty until enrichment runs
	Location    string
	Experience  string
	Description string
	ListingURL  string
	ApplyURL    string
	PostedDate  time.Time // zero when the source page carried no date
	Source      string    // which scraper produced the record
	Embedding   []float32 // nil until enrichment runs
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Enriched reports whether both derived fields have been populated.
func (j *Job) Enriched() bool {
	return len(j.Embedding) > 0 && j.Role != ""
}

// EmbeddingText returns the text the job's embedding is computed from.
func (j *Job) EmbeddingText() string {
	return j.Title + " " + j.Description
}

// DedupKey identifies a scraped posting across pipeline runs.
func (j *Job) DedupKey() ID {
	return IDFromContent(j.Source + "|" + j.ListingURL + "|" + j.ApplyURL)
}

// SkillSet is a set of normalized lowercase skill tokens.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from tokens, lowercasing and dropping blanks.
func NewSkillSet(tokens ...string) SkillSet {
	s := make(SkillSet, len(tokens))
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts a token after normalization. Blank tokens are ignored.
func (s SkillSet) Add(token string) {
	token = normalizeToken(token)
	if token == "" {
		return
	}
	s[token] = struct{}{}
}

// Contains reports whether the normalized token is in the set.
func (s SkillSet) Contains(token string) bool {
	_, ok := s[normalizeToken(token)]
	return ok
}

// Intersect returns the tokens present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for t := range s {
		if _, ok := other[t]; ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// Sorted returns the tokens in lexical order for deterministic output.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sortStrings(out)
	return out
}

// SearchFilters constrains candidate retrieval and biases scoring for one
// search call. Filters never mutate stored data.
type SearchFilters struct {
	Location     string   // substring, case-insensitive
	Experience   string   // substring; "fresher"-like inputs expand to aliases
	RoleType     string   // free-text role/title hint
	ResumeSkills SkillSet // explicit skills; empty means infer from the query
}

// ScoredJob is a Job plus the transient scoring attributes of one search
// call. It is never persisted.
type ScoredJob struct {
	Job
	VectorScore   float64
	SkillScore    float64
	TitleMatch    bool
	RoleMatch     bool
	MatchedSkills []string
	FinalScore    float64
}

// SearchResponse is the consumer-facing result of one query: a generated or
// templated explanation plus the ranked jobs.
type SearchResponse struct {
	Response string
	Jobs     []*ScoredJob
}
