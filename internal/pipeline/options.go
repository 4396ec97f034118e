package pipeline

import (
	"github.com/okian/marquee/internal/adapters/tmdb"
	"github.com/okian/marquee/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger replaces the pipeline's logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRawCorpusPath sets where the raw CSV is read from (and written
// to when fetching).
func WithRawCorpusPath(path string) Option {
	return func(p *Pipeline) {
		if path != "" {
			p.rawPath = path
		}
	}
}

// WithArtifactPaths sets where the schema, model and rankings
// artifacts are written.
func WithArtifactPaths(schemaPath, modelPath, rankingsPath string) Option {
	return func(p *Pipeline) {
		if schemaPath != "" {
			p.schemaPath = schemaPath
		}
		if modelPath != "" {
			p.modelPath = modelPath
		}
		if rankingsPath != "" {
			p.rankingsPath = rankingsPath
		}
	}
}

// WithInflation supplies the year -> multiplier table used to put all
// financials on a common basis. Years absent from the table pass
// through unadjusted.
func WithInflation(table map[int]float64) Option {
	return func(p *Pipeline) {
		if table != nil {
			p.inflation = table
		}
	}
}

// WithFetcher enables the fetch stage. Without it the pipeline starts
// from the existing raw CSV.
func WithFetcher(f *tmdb.Fetcher) Option {
	return func(p *Pipeline) {
		p.fetcher = f
	}
}

// WithYearRange sets the inclusive fetch year range.
func WithYearRange(start, end int) Option {
	return func(p *Pipeline) {
		if start > 0 && end >= start {
			p.startYear = start
			p.endYear = end
		}
	}
}

// WithTraining overrides gradient-descent tunables. Zero values keep
// the predict package defaults.
func WithTraining(epochs int, learningRate float64) Option {
	return func(p *Pipeline) {
		p.epochs = epochs
		p.learningRate = learningRate
	}
}

// WithSplit overrides the train/test split fraction and seed.
func WithSplit(testFraction float64, seed int64) Option {
	return func(p *Pipeline) {
		if testFraction > 0 && testFraction < 1 {
			p.testFraction = testFraction
		}
		if seed != 0 {
			p.splitSeed = seed
		}
	}
}
