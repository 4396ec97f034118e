// Package vector builds model-input vectors aligned to a canonical
// feature schema.
//
// Build is pure and stateless: the same (schema, input) pair always
// yields the same vector, and the output length and per-index meaning
// match the schema unconditionally. Category labels the schema has
// never heard of simply contribute nothing; they are a supported edge
// case, not an error, because a schema fixed at training time has no
// slot to put them in.
package vector

import (
	"github.com/okian/marquee/internal/domain/encoding"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/schema"
)

// dollarsPerMillion converts the form's budget unit to schema dollars.
const dollarsPerMillion = 1_000_000

// Build produces one vector with entry i corresponding to
// s.Features()[i]. Every entry starts at zero, which is already the
// correct value for all indicator features the input does not select
// and for any numeric feature the input cannot supply. Numeric fields
// are then copied by exact name match, and at most one season and one
// genre indicator are raised.
func Build(s *schema.Schema, in model.LiveInput) []float64 {
	vec := make([]float64, s.Len())

	set := func(name string, value float64) {
		if i, ok := s.Index(name); ok {
			vec[i] = value
		}
	}

	set(schema.FeatureBudget, in.BudgetMillions*dollarsPerMillion)
	set(schema.FeatureRuntime, in.Runtime)
	if in.IsFranchise {
		set(schema.FeatureFranchise, 1)
	}
	set(schema.FeatureDirectorScore, in.DirectorScore)
	set(schema.FeatureActorScore, in.ActorScore)

	// Unknown labels fall through set's existence check untouched.
	set(encoding.SeasonFeature(in.Season), 1)
	set(encoding.GenreFeature(in.PrimaryGenre), 1)

	return vec
}
