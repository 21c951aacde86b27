package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State describes what a pipeline is currently doing.
type State int

const (
	// Idle means no run is in progress.
	Idle State = iota
	// Scraping means the site scrapers are collecting postings.
	Scraping
	// Enriching means stored rows are being embedded and classified.
	Enriching
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scraping:
		return "scraping"
	case Enriching:
		return "enriching"
	default:
		return "unknown"
	}
}

// ScrapeRunner is the scraping stage seen by the pipeline. The scrape
// package's Runner satisfies it.
type ScrapeRunner interface {
	Run(ctx context.Context) (int, error)
}

// Pipeline drives one collection cycle: scrape, then enrich.
type Pipeline struct {
	runner   ScrapeRunner
	enricher *Enricher
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// NewPipeline creates a pipeline from its two stages.
func NewPipeline(runner ScrapeRunner, enricher *Enricher, logger *slog.Logger) (*Pipeline, error) {
	if runner == nil {
		return nil, ErrRunnerRequired
	}
	if enricher == nil {
		return nil, ErrRepositoryRequired
	}
	if logger == nil {
		logger = slog.Default().With("component", "pipeline")
	}

	return &Pipeline{
		runner:   runner,
		enricher: enricher,
		logger:   logger,
	}, nil
}

// State reports the pipeline's current stage.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Run executes one full cycle. A run that scraped nothing skips the
// enriching stage; rows left pending by earlier failures are picked up by
// the next run that does insert. Scrape failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("pipeline run starting")
	defer p.setState(Idle)

	p.setState(Scraping)
	inserted, err := p.runner.Run(ctx)
	if err != nil {
		p.logger.Error("scraping stage failed", "err", err)
		return err
	}
	if inserted == 0 {
		p.logger.Info("no new jobs scraped, skipping enrichment")
		return nil
	}
	p.logger.Info("scraping stage done", "inserted", inserted)

	p.setState(Enriching)
	enriched, err := p.enricher.Run(ctx)
	if err != nil {
		p.logger.Error("enriching stage failed", "err", err)
		return err
	}

	p.logger.Info("pipeline run finished",
		"inserted", inserted, "enriched", enriched,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}
