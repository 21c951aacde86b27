package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage"
)

const embeddingDim = 768

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS jobs (
	id           BIGSERIAL PRIMARY KEY,
	title        TEXT NOT NULL,
	role         TEXT,
	location     TEXT,
	experience   TEXT,
	description  TEXT,
	listing_url  TEXT NOT NULL,
	apply_url    TEXT NOT NULL,
	posted_date  TIMESTAMPTZ,
	source       TEXT NOT NULL,
	embedding    vector(768),
	inserted_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS jobs_identity_idx
	ON jobs (source, listing_url, apply_url);
`

const candidateColumns = `id, title, COALESCE(role, ''), COALESCE(location, ''),
	COALESCE(experience, ''), COALESCE(description, ''), listing_url, apply_url,
	posted_date, source, inserted_at, updated_at`

// Repository implements storage.JobRepository on a pgx connection pool.
type Repository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used by the repository.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// New connects to the database, verifies the connection and ensures the
// schema exists.
func New(ctx context.Context, databaseURL string, opts ...Option) (*Repository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	r := &Repository{
		pool:   pool,
		logger: slog.Default().With("component", "postgres-repository"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *Repository) initSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// AddJobs batch-inserts scraped jobs. Rows whose (source, listing_url,
// apply_url) identity already exists are skipped by the unique index.
func (r *Repository) AddJobs(ctx context.Context, jobs ...*core.Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, job := range jobs {
		var posted any
		if !job.PostedDate.IsZero() {
			posted = job.PostedDate
		}
		batch.Queue(`
			INSERT INTO jobs (title, role, location, experience, description,
				listing_url, apply_url, posted_date, source)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (source, listing_url, apply_url) DO NOTHING`,
			job.Title, job.Role, job.Location, job.Experience, job.Description,
			job.ListingURL, job.ApplyURL, posted, job.Source)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range jobs {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("%w: inserting jobs: %v", storage.ErrQueryFailed, err)
		}
		inserted += int(tag.RowsAffected())
	}

	r.logger.Debug("jobs inserted", "offered", len(jobs), "inserted", inserted)
	return inserted, nil
}

// PendingEnrichment returns jobs still missing an embedding or role label,
// oldest first.
func (r *Repository) PendingEnrichment(ctx context.Context, limit int) ([]*core.Job, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+candidateColumns+`
		FROM jobs
		WHERE embedding IS NULL OR role IS NULL OR role = ''
		ORDER BY inserted_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting pending jobs: %v", storage.ErrQueryFailed, err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// SetEnrichment stores the embedding and role for one job.
func (r *Repository) SetEnrichment(ctx context.Context, id int64, vector []float32, role string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET embedding = $1::vector, role = $2, updated_at = NOW()
		WHERE id = $3`,
		vectorLiteral(vector), role, id)
	if err != nil {
		return fmt.Errorf("%w: updating enrichment for job %d: %v", storage.ErrQueryFailed, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: job %d", storage.ErrNotFound, id)
	}
	return nil
}

// Candidates retrieves scoring candidates. With a query vector, rows come
// back ordered by cosine distance with similarity = 1 - distance. Without
// one, ordering degrades to recency and similarity is reported as zero.
// Rows without an embedding never qualify.
func (r *Repository) Candidates(ctx context.Context, query storage.CandidateQuery) ([]*storage.Candidate, error) {
	if query.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	similarity := "0"
	orderBy := "posted_date DESC NULLS LAST, inserted_at DESC"
	if query.Vector != nil {
		p := arg(vectorLiteral(query.Vector))
		similarity = fmt.Sprintf("1 - (embedding <=> %s::vector)", p)
		orderBy = fmt.Sprintf("embedding <=> %s::vector", p)
	}

	conditions = append(conditions, "embedding IS NOT NULL")
	if query.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE '%%' || %s || '%%'", arg(query.Location)))
	}
	if aliases := storage.ExpandExperience(query.Experience); len(aliases) > 0 {
		var alts []string
		for _, alias := range aliases {
			alts = append(alts, fmt.Sprintf("experience ILIKE '%%' || %s || '%%'", arg(alias)))
		}
		conditions = append(conditions, "("+strings.Join(alts, " OR ")+")")
	}

	sql := fmt.Sprintf(`
		SELECT %s, %s AS similarity
		FROM jobs
		WHERE %s
		ORDER BY %s
		LIMIT %s`,
		candidateColumns, similarity,
		strings.Join(conditions, " AND "), orderBy, arg(query.Limit))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting candidates: %v", storage.ErrQueryFailed, err)
	}
	defer rows.Close()

	var candidates []*storage.Candidate
	for rows.Next() {
		job, similarity, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning candidate: %v", storage.ErrQueryFailed, err)
		}
		candidates = append(candidates, &storage.Candidate{Job: job, Similarity: similarity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading candidates: %v", storage.ErrQueryFailed, err)
	}

	return candidates, nil
}

// CountJobs reports the total number of stored jobs.
func (r *Repository) CountJobs(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting jobs: %v", storage.ErrQueryFailed, err)
	}
	return count, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func scanJob(row pgx.Row) (*core.Job, error) {
	var (
		job    core.Job
		posted *time.Time
	)
	if err := row.Scan(&job.Id, &job.Title, &job.Role, &job.Location,
		&job.Experience, &job.Description, &job.ListingURL, &job.ApplyURL,
		&posted, &job.Source, &job.InsertedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	if posted != nil {
		job.PostedDate = *posted
	}
	return &job, nil
}

func scanJobs(rows pgx.Rows) ([]*core.Job, error) {
	var jobs []*core.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning job: %v", storage.ErrQueryFailed, err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading jobs: %v", storage.ErrQueryFailed, err)
	}
	return jobs, nil
}

func scanCandidate(rows pgx.Rows) (*core.Job, float64, error) {
	var (
		job        core.Job
		posted     *time.Time
		similarity float64
	)
	if err := rows.Scan(&job.Id, &job.Title, &job.Role, &job.Location,
		&job.Experience, &job.Description, &job.ListingURL, &job.ApplyURL,
		&posted, &job.Source, &job.InsertedAt, &job.UpdatedAt, &similarity); err != nil {
		return nil, 0, err
	}
	if posted != nil {
		job.PostedDate = *posted
	}
	return &job, similarity, nil
}
