package pipeline

import (
	"context"
	"fmt"

	"github.com/okian/marquee/internal/domain/encoding"
	"github.com/okian/marquee/internal/domain/ledger"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/schema"
	"github.com/okian/marquee/internal/domain/temporal"
)

// Dataset is the training-time output: the canonical schema, the
// feature matrix aligned to it, the revenue targets, the movies in
// processing order, and the final ledgers for rankings.
type Dataset struct {
	Schema *schema.Schema
	X      [][]float64 // one row per movie, one column per schema entry
	Y      []float64   // inflation-adjusted revenue, dollars
	Movies []model.Movie
	Scores []temporal.Score

	Directors *ledger.Ledger
	Actors    *ledger.Ledger
}

// BuildFeatures runs the temporal aggregation and categorical encoding
// over a cleaned corpus and assembles the training matrix. The schema
// order is fixed here: the five numeric features first, then genre
// indicators sorted, then season indicators sorted.
func BuildFeatures(ctx context.Context, movies []model.Movie) (*Dataset, error) {
	if len(movies) == 0 {
		return nil, fmt.Errorf("build features: %w", ErrEmptyCorpus)
	}

	agg := temporal.New()
	sorted, scores, err := agg.Run(ctx, movies)
	if err != nil {
		return nil, fmt.Errorf("temporal aggregation: %w", err)
	}

	vocab := encoding.BuildVocabulary(sorted)
	names := []string{
		schema.FeatureBudget,
		schema.FeatureRuntime,
		schema.FeatureFranchise,
		schema.FeatureDirectorScore,
		schema.FeatureActorScore,
	}
	names = append(names, vocab.GenreFeatures()...)
	names = append(names, vocab.SeasonFeatures()...)
	sch := schema.New(names)

	x := make([][]float64, len(sorted))
	y := make([]float64, len(sorted))
	for i := range sorted {
		x[i] = featureRow(sch, vocab, sorted[i], scores[i])
		y[i] = sorted[i].RevenueAdj
	}

	return &Dataset{
		Schema:    sch,
		X:         x,
		Y:         y,
		Movies:    sorted,
		Scores:    scores,
		Directors: agg.Directors(),
		Actors:    agg.Actors(),
	}, nil
}

// featureRow assembles one training row positionally aligned to sch.
// Indicator columns come from the vocabulary, which by construction
// contains every name the movie's indicators can produce.
func featureRow(sch *schema.Schema, vocab *encoding.Vocabulary, m model.Movie, score temporal.Score) []float64 {
	row := make([]float64, sch.Len())

	set := func(name string, value float64) {
		if i, ok := sch.Index(name); ok {
			row[i] = value
		}
	}

	set(schema.FeatureBudget, m.BudgetAdj)
	set(schema.FeatureRuntime, m.Runtime)
	if m.IsFranchise {
		set(schema.FeatureFranchise, 1)
	}
	set(schema.FeatureDirectorScore, score.Director)
	set(schema.FeatureActorScore, score.Actor)

	for name := range vocab.Indicators(m) {
		set(name, 1)
	}
	return row
}
