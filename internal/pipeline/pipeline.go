// Package pipeline drives the batch training run: optional fetch,
// clean, feature derivation and model training, each stage feeding the
// next and failing the run on the first hard error.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/marquee/internal/adapters/corpus"
	"github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/adapters/tmdb"
	"github.com/okian/marquee/internal/domain/dedupe"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/predict"
	"github.com/okian/marquee/pkg/logger"
	"github.com/okian/marquee/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	defaultTestFraction = 0.2
	defaultSplitSeed    = 42
	defaultStartYear    = 2000
	defaultEndYear      = 2024
)

// Pipeline owns one training run's configuration.
type Pipeline struct {
	log logger.Logger

	rawPath      string
	schemaPath   string
	modelPath    string
	rankingsPath string

	inflation map[int]float64

	fetcher   *tmdb.Fetcher // nil means: reuse the existing raw CSV
	startYear int
	endYear   int

	epochs       int
	learningRate float64
	testFraction float64
	splitSeed    int64
}

// New creates a pipeline with the given artifact paths and options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		log:          logger.Named("pipeline"),
		rawPath:      "data/tmdb_movies_raw.csv",
		schemaPath:   "artifacts/schema.json",
		modelPath:    "artifacts/model.json",
		rankingsPath: "artifacts/rankings.json",
		inflation:    map[int]float64{},
		startYear:    defaultStartYear,
		endYear:      defaultEndYear,
		testFraction: defaultTestFraction,
		splitSeed:    defaultSplitSeed,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full pipeline. Each stage logs its duration; the
// first failing stage aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, path := range []string{p.rawPath, p.schemaPath, p.modelPath, p.rankingsPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
	}

	if p.fetcher != nil {
		if err := p.stage(ctx, "fetch", p.runFetch); err != nil {
			return err
		}
	}

	var cleaned []model.Movie
	if err := p.stage(ctx, "clean", func(ctx context.Context) error {
		raw, err := corpus.Read(p.rawPath)
		if err != nil {
			return err
		}
		var diag Diagnostics
		cleaned, diag = Clean(ctx, raw, p.inflation, dedupe.NewInMemoryDeduper())
		p.log.Info(ctx, "corpus cleaned",
			logger.Int("rows_in", diag.RowsIn),
			logger.Int("rows_kept", diag.RowsKept),
			logger.Int("duplicates", diag.Duplicates),
			logger.Int("low_budget", diag.LowBudget),
			logger.Int("low_revenue", diag.LowRevenue),
			logger.Int("bad_dates", diag.BadDates),
			logger.Int("malformed_genres", diag.MalformedGenres),
			logger.Int("malformed_crew", diag.MalformedCrew),
			logger.Int("malformed_cast", diag.MalformedCast),
			logger.Int("malformed_collection", diag.MalformedCollection))
		if len(cleaned) == 0 {
			return ErrEmptyCorpus
		}
		return nil
	}); err != nil {
		return err
	}

	var ds *Dataset
	if err := p.stage(ctx, "features", func(ctx context.Context) error {
		var err error
		ds, err = BuildFeatures(ctx, cleaned)
		if err != nil {
			return err
		}
		if err := ds.Schema.Save(p.schemaPath); err != nil {
			return err
		}
		rankings := repository.NewRankingStore()
		rankings.SetKind(repository.KindDirector, ds.Directors.Scores())
		rankings.SetKind(repository.KindActor, ds.Actors.Scores())
		if err := rankings.Save(p.rankingsPath); err != nil {
			return err
		}
		metrics.SetSchemaFeatureCount(ds.Schema.Len())
		metrics.SetTalentCount(repository.KindDirector, ds.Directors.Size())
		metrics.SetTalentCount(repository.KindActor, ds.Actors.Size())
		p.log.Info(ctx, "features built",
			logger.Int("movies", len(ds.Movies)),
			logger.Int("features", ds.Schema.Len()),
			logger.String("schema_hash", ds.Schema.Hash()))
		return nil
	}); err != nil {
		return err
	}

	if err := p.stage(ctx, "train", func(ctx context.Context) error {
		xTrain, xTest, yTrain, yTest := predict.Split(ds.X, ds.Y, p.testFraction, p.splitSeed)
		trainOpts := []predict.Option{predict.WithSchemaHash(ds.Schema.Hash())}
		if p.epochs > 0 {
			trainOpts = append(trainOpts, predict.WithEpochs(p.epochs))
		}
		if p.learningRate > 0 {
			trainOpts = append(trainOpts, predict.WithLearningRate(p.learningRate))
		}
		m, err := predict.Train(ctx, xTrain, yTrain, trainOpts...)
		if err != nil {
			return err
		}
		preds := make([]float64, len(xTest))
		for i, row := range xTest {
			if preds[i], err = m.Predict(row); err != nil {
				return err
			}
		}
		quality := predict.Evaluate(yTest, preds)
		p.log.Info(ctx, "model trained",
			logger.Int("train_rows", len(xTrain)),
			logger.Int("test_rows", len(xTest)),
			logger.Float64("r2", quality.R2),
			logger.Float64("rmse", quality.RMSE),
			logger.Float64("mae", quality.MAE))
		return m.Save(p.modelPath)
	}); err != nil {
		return err
	}

	metrics.SetPipelineLastRun(float64(time.Now().Unix()))
	p.log.Info(ctx, "pipeline complete",
		logger.String("schema", p.schemaPath),
		logger.String("model", p.modelPath),
		logger.String("rankings", p.rankingsPath))
	return nil
}

// stage runs fn under a duration metric and stage-scoped logging.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	p.log.Info(ctx, "stage starting", logger.String("stage", name))
	err := fn(ctx)
	elapsed := time.Since(start)
	metrics.RecordPipelineStageDuration(name, elapsed.Seconds())
	if err != nil {
		p.log.Error(ctx, "stage failed",
			logger.String("stage", name),
			logger.Duration("elapsed", elapsed),
			logger.Error(err))
		return fmt.Errorf("stage %s: %w", name, err)
	}
	p.log.Info(ctx, "stage complete",
		logger.String("stage", name),
		logger.Duration("elapsed", elapsed))
	return nil
}

func (p *Pipeline) runFetch(ctx context.Context) error {
	rows, err := p.fetcher.FetchYears(ctx, p.startYear, p.endYear)
	if err != nil {
		return err
	}
	return corpus.Write(p.rawPath, rows)
}
