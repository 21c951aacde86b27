package scrape

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/storage"
)

const defaultPoolSize = 5

// SeenFilter drops postings already ingested in a previous run. The badger
// SeenStore satisfies it.
type SeenFilter interface {
	SeenScraped(key core.ID) (bool, error)
	MarkScraped(key core.ID) error
}

// Runner executes all site scrapers on a worker pool and appends their
// batches to the repository.
type Runner struct {
	repo     storage.JobRepository
	scrapers []Scraper
	seen     SeenFilter
	poolSize int
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) error {
		r.logger = logger
		return nil
	}
}

// WithPoolSize sets the number of scrapers running concurrently.
func WithPoolSize(size int) RunnerOption {
	return func(r *Runner) error {
		if size > 0 {
			r.poolSize = size
		}
		return nil
	}
}

// WithSeenFilter enables cross-run dedup through the given filter.
func WithSeenFilter(seen SeenFilter) RunnerOption {
	return func(r *Runner) error {
		r.seen = seen
		return nil
	}
}

// NewRunner creates a runner over the given repository and scrapers.
func NewRunner(repo storage.JobRepository, scrapers []Scraper, opts ...RunnerOption) (*Runner, error) {
	if repo == nil {
		return nil, ErrNilRepository
	}
	if len(scrapers) == 0 {
		return nil, ErrNoScrapers
	}

	r := &Runner{
		repo:     repo,
		scrapers: scrapers,
		poolSize: defaultPoolSize,
		logger:   slog.Default().With("component", "scrape-runner"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run executes every scraper and returns the total number of rows inserted.
// A scraper's failure is logged and isolated; Run itself only fails when the
// context is cancelled.
func (r *Runner) Run(ctx context.Context) (int, error) {
	pool, err := ants.NewPool(r.poolSize)
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	var (
		wg    sync.WaitGroup
		total atomic.Int64
	)

	for _, scraper := range r.scrapers {
		scraper := scraper
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			inserted := r.runOne(ctx, scraper)
			total.Add(int64(inserted))
		}); err != nil {
			wg.Done()
			r.logger.Error("submitting scraper failed", "scraper", scraper.Name(), "err", err)
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return int(total.Load()), err
	}

	r.logger.Info("scrape run finished", "inserted", total.Load())
	return int(total.Load()), nil
}

func (r *Runner) runOne(ctx context.Context, scraper Scraper) int {
	jobs, err := scraper.Scrape(ctx)
	if err != nil {
		r.logger.Error("scraper failed", "scraper", scraper.Name(), "err", err)
		return 0
	}
	if len(jobs) == 0 {
		r.logger.Info("scraper found no jobs", "scraper", scraper.Name())
		return 0
	}

	fresh := r.filterSeen(jobs)
	if len(fresh) == 0 {
		r.logger.Info("all jobs already seen", "scraper", scraper.Name(), "scraped", len(jobs))
		return 0
	}

	inserted, err := r.repo.AddJobs(ctx, fresh...)
	if err != nil {
		r.logger.Error("storing jobs failed", "scraper", scraper.Name(), "err", err)
		return 0
	}

	r.markSeen(fresh)
	r.logger.Info("scraper batch stored", "scraper", scraper.Name(),
		"scraped", len(jobs), "inserted", inserted)
	return inserted
}

// filterSeen drops rows the SeenFilter already knows. Filter errors fail
// open: the repository's unique index still catches the duplicate.
func (r *Runner) filterSeen(jobs []*core.Job) []*core.Job {
	if r.seen == nil {
		return jobs
	}

	fresh := jobs[:0:0]
	for _, job := range jobs {
		seen, err := r.seen.SeenScraped(job.DedupKey())
		if err != nil {
			r.logger.Warn("seen lookup failed", "err", err)
			fresh = append(fresh, job)
			continue
		}
		if !seen {
			fresh = append(fresh, job)
		}
	}
	return fresh
}

func (r *Runner) markSeen(jobs []*core.Job) {
	if r.seen == nil {
		return
	}
	for _, job := range jobs {
		if err := r.seen.MarkScraped(job.DedupKey()); err != nil {
			r.logger.Warn("marking seen failed", "err", err)
		}
	}
}
