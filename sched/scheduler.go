// Package sched wires up the cron jobs that periodically re-run the
// ingestion pipeline and the notification scan.
package sched

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultPipelineSpec runs the collection cycle every morning.
	DefaultPipelineSpec = "0 9 * * *"

	// DefaultNotifySpec runs the alert scan after lunch, once the morning
	// run has had time to land new rows.
	DefaultNotifySpec = "0 13 * * *"
)

// ErrPipelineRequired indicates the scheduler needs a pipeline runner.
var ErrPipelineRequired = errors.New("pipeline runner is required")

// Runner is a unit of scheduled work.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context) error

// Run calls the function.
func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler wraps robfig/cron and owns the daily triggers. Stop prevents
// new runs only; in-flight work finishes on its own.
type Scheduler struct {
	cron         *cron.Cron
	pipeline     Runner
	notifier     Runner
	pipelineSpec string
	notifySpec   string
	logger       *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPipelineSpec overrides the pipeline cron spec.
func WithPipelineSpec(spec string) Option {
	return func(s *Scheduler) {
		s.pipelineSpec = spec
	}
}

// WithNotifySpec overrides the notification cron spec.
func WithNotifySpec(spec string) Option {
	return func(s *Scheduler) {
		s.notifySpec = spec
	}
}

// WithLogger sets the scheduler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scheduler. notifier may be nil when alerting is not
// configured; only the pipeline trigger is registered then.
func New(pipeline, notifier Runner, opts ...Option) (*Scheduler, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	s := &Scheduler{
		cron:         cron.New(cron.WithLogger(cron.DefaultLogger)),
		pipeline:     pipeline,
		notifier:     notifier,
		pipelineSpec: DefaultPipelineSpec,
		notifySpec:   DefaultNotifySpec,
		logger:       slog.Default().With("component", "scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start registers the triggers and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.pipelineSpec, func() {
		s.logger.Info("scheduled pipeline run starting")
		if err := s.pipeline.Run(ctx); err != nil {
			s.logger.Error("scheduled pipeline run failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("registering pipeline trigger: %w", err)
	}

	if s.notifier != nil {
		_, err := s.cron.AddFunc(s.notifySpec, func() {
			s.logger.Info("scheduled notification scan starting")
			if err := s.notifier.Run(ctx); err != nil {
				s.logger.Error("scheduled notification scan failed", "err", err)
			}
		})
		if err != nil {
			return fmt.Errorf("registering notify trigger: %w", err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		"pipelineSpec", s.pipelineSpec, "notifySpec", s.notifySpec)
	return nil
}

// Stop stops the cron loop and waits for running jobs to return.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
}
