package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/r-yashaswini/job-recommender-system/ai"
	"github.com/r-yashaswini/job-recommender-system/ai/ollama"
	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/ingestion"
	"github.com/r-yashaswini/job-recommender-system/notify"
	"github.com/r-yashaswini/job-recommender-system/sched"
	"github.com/r-yashaswini/job-recommender-system/scrape"
	"github.com/r-yashaswini/job-recommender-system/search"
	badgerstore "github.com/r-yashaswini/job-recommender-system/storage/badger"
	"github.com/r-yashaswini/job-recommender-system/storage/postgres"
	"github.com/r-yashaswini/job-recommender-system/summarize"
)

func main() {
	app := &cli.App{
		Name:  "jobrec",
		Usage: "Job collection and recommendation system",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run one collection cycle: scrape all sites, then enrich new rows",
				Action: runCommand,
				Flags:  append(storageFlags(), aiFlags()...),
			},
			{
				Name:   "schedule",
				Usage:  "Run the daily pipeline and notification scan on a cron schedule",
				Action: scheduleCommand,
				Flags: append(append(storageFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:    "recipients",
						Usage:   "Path to JSON file of notification recipients (omit to disable alerts)",
						EnvVars: []string{"RECIPIENTS_FILE"},
					},
					&cli.StringFlag{
						Name:    "smtp-host",
						Usage:   "SMTP server host",
						EnvVars: []string{"SMTP_HOST"},
						Value:   "smtp.gmail.com",
					},
					&cli.IntFlag{
						Name:    "smtp-port",
						Usage:   "SMTP server port",
						EnvVars: []string{"SMTP_PORT"},
						Value:   587,
					},
					&cli.StringFlag{
						Name:    "smtp-username",
						Usage:   "SMTP account username (also the From address)",
						EnvVars: []string{"SMTP_USERNAME"},
					},
					&cli.StringFlag{
						Name:    "smtp-password",
						Usage:   "SMTP account password",
						EnvVars: []string{"SMTP_PASSWORD"},
					},
					&cli.StringFlag{
						Name:  "pipeline-spec",
						Usage: "Cron spec for the collection cycle",
						Value: sched.DefaultPipelineSpec,
					},
					&cli.StringFlag{
						Name:  "notify-spec",
						Usage: "Cron spec for the notification scan",
						Value: sched.DefaultNotifySpec,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search stored jobs and print a summarized answer",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(append(storageFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:  "location",
						Usage: "Filter by location substring",
					},
					&cli.StringFlag{
						Name:  "experience",
						Usage: "Filter by experience substring (fresher expands to its aliases)",
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Role hint to bias scoring",
					},
					&cli.StringSliceFlag{
						Name:  "skill",
						Usage: "Resume skill (repeatable; overrides skills inferred from the query)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
				),
			},
			{
				Name:   "init-db",
				Usage:  "Create the database schema and pgvector extension",
				Action: initDBCommand,
				Flags:  storageFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "database-url",
			Aliases:  []string{"d"},
			Usage:    "PostgreSQL connection URL",
			EnvVars:  []string{"DATABASE_URL"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "state-db",
			Usage:   "Path to BadgerDB directory for dedup and notification state",
			EnvVars: []string{"STATE_DB"},
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "ollama-host",
			Usage:   "Ollama server URL",
			EnvVars: []string{"OLLAMA_HOST"},
			Value:   "http://localhost:11434",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"EMBEDDING_MODEL"},
			Value:   "nomic-embed-text:v1.5",
		},
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	repo, err := postgres.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	embedder, err := newEmbedder(c)
	if err != nil {
		return err
	}

	seen, err := openStateDB(c)
	if err != nil {
		return err
	}
	if seen != nil {
		defer seen.Close()
	}

	pipeline, err := buildPipeline(repo, embedder, seen)
	if err != nil {
		return err
	}

	return pipeline.Run(ctx)
}

func scheduleCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := postgres.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	embedder, err := newEmbedder(c)
	if err != nil {
		return err
	}

	seen, err := openStateDB(c)
	if err != nil {
		return err
	}
	if seen != nil {
		defer seen.Close()
	}

	pipeline, err := buildPipeline(repo, embedder, seen)
	if err != nil {
		return err
	}

	var notifyRunner sched.Runner
	if c.String("recipients") != "" {
		notifier, err := buildNotifier(c, repo, embedder, seen)
		if err != nil {
			return err
		}
		notifyRunner = sched.RunnerFunc(func(ctx context.Context) error {
			_, err := notifier.Run(ctx)
			return err
		})
	}

	scheduler, err := sched.New(pipeline, notifyRunner,
		sched.WithPipelineSpec(c.String("pipeline-spec")),
		sched.WithNotifySpec(c.String("notify-spec")))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	<-ctx.Done()
	scheduler.Stop()
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("a search query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	repo, err := postgres.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	provider, err := ollama.NewProvider(newAIConfig(c))
	if err != nil {
		return fmt.Errorf("failed to create model provider: %w", err)
	}
	defer provider.Close()

	searcher, err := search.NewSearcher(repo, provider.Embedder())
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	service, err := search.NewService(searcher, summarize.New(provider.Generator(), nil), nil)
	if err != nil {
		return fmt.Errorf("failed to create search service: %w", err)
	}

	filters := core.SearchFilters{
		Location:     c.String("location"),
		Experience:   c.String("experience"),
		RoleType:     c.String("role"),
		ResumeSkills: core.NewSkillSet(c.StringSlice("skill")...),
	}

	resp := service.Answer(ctx, query, filters, c.Int("limit"))

	fmt.Println(resp.Response)
	for i, job := range resp.Jobs {
		fmt.Println()
		fmt.Printf("%d. %s (%.0f%% match)\n", i+1, job.Title, job.FinalScore*100)
		fmt.Printf("   %s | %s | %s\n", job.Role, job.Location, job.Experience)
		if len(job.MatchedSkills) > 0 {
			fmt.Printf("   Matched skills: %s\n", strings.Join(job.MatchedSkills, ", "))
		}
		fmt.Printf("   Apply: %s\n", job.ApplyURL)
	}
	return nil
}

func initDBCommand(c *cli.Context) error {
	ctx := context.Background()

	// New applies the schema on connect, so opening is all init-db does.
	repo, err := postgres.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repo.Close()

	fmt.Fprintln(os.Stderr, "Database schema ready.")
	return nil
}

func newAIConfig(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("ollama-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
}

func newEmbedder(c *cli.Context) (ai.Embedder, error) {
	embedder, err := ollama.NewEmbedder(newAIConfig(c))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

func openStateDB(c *cli.Context) (*badgerstore.SeenStore, error) {
	path := c.String("state-db")
	if path == "" {
		return nil, nil
	}
	store, err := badgerstore.Open(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return store, nil
}

func buildPipeline(repo *postgres.Repository, embedder ai.Embedder, seen *badgerstore.SeenStore) (*ingestion.Pipeline, error) {
	fetcher := scrape.NewFetcher()
	scrapers := []scrape.Scraper{
		scrape.NewJobsNet(fetcher),
		scrape.NewFreshersNow(fetcher),
		scrape.NewFreshersRecruitment(fetcher),
	}

	runnerOpts := []scrape.RunnerOption{}
	if seen != nil {
		runnerOpts = append(runnerOpts, scrape.WithSeenFilter(seen))
	}
	runner, err := scrape.NewRunner(repo, scrapers, runnerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape runner: %w", err)
	}

	enricher, err := ingestion.NewEnricher(repo, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to create enricher: %w", err)
	}

	pipeline, err := ingestion.NewPipeline(runner, enricher, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	return pipeline, nil
}

func buildNotifier(c *cli.Context, repo *postgres.Repository, embedder ai.Embedder, seen *badgerstore.SeenStore) (*notify.Notifier, error) {
	searcher, err := search.NewSearcher(repo, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}

	sender := notify.NewSMTPSender(
		c.String("smtp-host"), c.Int("smtp-port"),
		c.String("smtp-username"), c.String("smtp-password"))

	var ledger notify.Ledger
	if seen != nil {
		ledger = seen
	}

	notifier, err := notify.NewNotifier(searcher,
		notify.NewFileSource(c.String("recipients")), sender, ledger, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}
	return notifier, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
