// Package config defines service configuration structures and loading.
//
// Conventions:
// - New() builds defaults; Load(ctx) layers file and env on top.
// - Keys use snake_case koanf tags; env vars use the MARQUEE_ prefix.
package config

import "runtime"

// Config contains process configuration for both the serving binary
// and the training pipeline.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RawCorpusPath is the raw movie CSV the pipeline reads (and the
	// fetch stage writes).
	RawCorpusPath string `koanf:"raw_corpus_path"`

	// SchemaPath, ModelPath and RankingsPath locate the training
	// artifacts shared between the pipeline and the serving binary.
	SchemaPath   string `koanf:"schema_path"`
	ModelPath    string `koanf:"model_path"`
	RankingsPath string `koanf:"rankings_path"`

	// TMDBAPIKey authenticates against the metadata provider. Empty
	// disables the fetch stage.
	TMDBAPIKey string `koanf:"tmdb_api_key"`

	// FetchWorkers bounds concurrent provider requests.
	FetchWorkers int `koanf:"fetch_workers"`

	// FetchStartYear and FetchEndYear give the inclusive release-year
	// range the fetch stage walks.
	FetchStartYear int `koanf:"fetch_start_year"`
	FetchEndYear   int `koanf:"fetch_end_year"`

	// PagesPerYear is how many popularity-sorted discover pages to
	// walk per year.
	PagesPerYear int `koanf:"pages_per_year"`

	// InflationFactors maps release year to the multiplier that puts
	// that year's dollars on the common basis.
	InflationFactors map[int]float64 `koanf:"inflation_factors"`

	// TrainEpochs and TrainLearningRate tune gradient descent; zero
	// keeps the model defaults.
	TrainEpochs       int     `koanf:"train_epochs"`
	TrainLearningRate float64 `koanf:"train_learning_rate"`

	// TestFraction is the held-out share for evaluation.
	TestFraction float64 `koanf:"test_fraction"`

	// MaxLeaderboardLimit caps GET /talent/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		RawCorpusPath:       "data/tmdb_movies_raw.csv",
		SchemaPath:          "artifacts/schema.json",
		ModelPath:           "artifacts/model.json",
		RankingsPath:        "artifacts/rankings.json",
		FetchWorkers:        runtime.NumCPU(),
		FetchStartYear:      2000,
		FetchEndYear:        2024,
		PagesPerYear:        10,
		InflationFactors:    map[int]float64{},
		TestFraction:        0.2,
		MaxLeaderboardLimit: 100,
	}
}
