package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/r-yashaswini/job-recommender-system/ai"
	"github.com/r-yashaswini/job-recommender-system/classify"
	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage"
)

const (
	defaultEnrichPoolSize = 8
	defaultEnrichBatch    = 200
)

// Enricher fills in the derived fields of stored jobs: the embedding of
// title+description and the classified role label.
type Enricher struct {
	repo     storage.JobRepository
	embedder ai.Embedder
	poolSize int
	batch    int
	logger   *slog.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher) error

// WithEnrichPoolSize sets how many rows are enriched concurrently.
func WithEnrichPoolSize(size int) EnricherOption {
	return func(e *Enricher) error {
		if size > 0 {
			e.poolSize = size
		}
		return nil
	}
}

// WithEnrichBatch sets how many pending rows one run picks up.
func WithEnrichBatch(limit int) EnricherOption {
	return func(e *Enricher) error {
		if limit > 0 {
			e.batch = limit
		}
		return nil
	}
}

// WithEnrichLogger sets the enricher's logger.
func WithEnrichLogger(logger *slog.Logger) EnricherOption {
	return func(e *Enricher) error {
		if logger != nil {
			e.logger = logger
		}
		return nil
	}
}

// NewEnricher creates an enricher over the repository and embedder.
func NewEnricher(repo storage.JobRepository, embedder ai.Embedder, opts ...EnricherOption) (*Enricher, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Enricher{
		repo:     repo,
		embedder: embedder,
		poolSize: defaultEnrichPoolSize,
		batch:    defaultEnrichBatch,
		logger:   slog.Default().With("component", "enricher"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Run enriches one batch of pending rows on a worker pool. Each row is
// independent: a failed embed or update is logged and the row stays pending
// for the next run. Returns the number of rows enriched.
func (e *Enricher) Run(ctx context.Context) (int, error) {
	pending, err := e.repo.PendingEnrichment(ctx, e.batch)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		e.logger.Info("no jobs pending enrichment")
		return 0, nil
	}

	e.logger.Info("enriching jobs", "count", len(pending))

	pool, err := ants.NewPool(e.poolSize)
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	for _, job := range pending {
		job := job
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if e.enrichOne(ctx, job) {
				done.Add(1)
			}
		}); err != nil {
			wg.Done()
			e.logger.Error("submitting enrichment failed", "jobID", job.Id, "err", err)
		}
	}
	wg.Wait()

	e.logger.Info("enrichment finished", "enriched", done.Load(), "pending", len(pending))
	return int(done.Load()), ctx.Err()
}

func (e *Enricher) enrichOne(ctx context.Context, job *core.Job) bool {
	vector, err := e.embedder.EmbedText(ctx, job.EmbeddingText())
	if err != nil {
		e.logger.Warn("embedding failed, row left pending", "jobID", job.Id, "err", err)
		return false
	}

	role := classify.ExtractRole(job.Title, job.Description)

	if err := e.repo.SetEnrichment(ctx, job.Id, vector, role); err != nil {
		e.logger.Warn("storing enrichment failed", "jobID", job.Id, "err", err)
		return false
	}

	e.logger.Debug("job enriched", "jobID", job.Id, "role", role)
	return true
}
