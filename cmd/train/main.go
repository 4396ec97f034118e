// Command train runs the batch pipeline: optional corpus fetch from
// the metadata provider, cleaning, feature derivation and model
// training. Artifacts land where the serving binary expects them.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okian/marquee/internal/adapters/tmdb"
	"github.com/okian/marquee/internal/config"
	"github.com/okian/marquee/internal/pipeline"
	"github.com/okian/marquee/pkg/logger"
)

func main() {
	fetch := flag.Bool("fetch", false, "fetch a fresh raw corpus from the metadata provider before training")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load .env before config so MARQUEE_TMDB_API_KEY can live there.
	if err := godotenv.Load(); err != nil {
		log.Debug(ctx, "no .env file found; using environment variables")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(log.Named("pipeline")),
		pipeline.WithRawCorpusPath(cfg.RawCorpusPath),
		pipeline.WithArtifactPaths(cfg.SchemaPath, cfg.ModelPath, cfg.RankingsPath),
		pipeline.WithInflation(cfg.InflationFactors),
		pipeline.WithTraining(cfg.TrainEpochs, cfg.TrainLearningRate),
		pipeline.WithSplit(cfg.TestFraction, 0),
	}

	if *fetch {
		if cfg.TMDBAPIKey == "" {
			log.Error(ctx, "fetch requested without an API key", logger.Error(pipeline.ErrNoAPIKey))
			os.Exit(1)
		}
		client := tmdb.NewClient(cfg.TMDBAPIKey)
		fetcher := tmdb.NewFetcher(client,
			tmdb.WithWorkers(cfg.FetchWorkers),
			tmdb.WithPagesPerYear(cfg.PagesPerYear),
			tmdb.WithLogger(log.Named("tmdb")),
		)
		opts = append(opts,
			pipeline.WithFetcher(fetcher),
			pipeline.WithYearRange(cfg.FetchStartYear, cfg.FetchEndYear),
		)
	}

	if err := pipeline.New(opts...).Run(ctx); err != nil {
		log.Error(ctx, "pipeline failed", logger.Error(err))
		os.Exit(1)
	}
}
