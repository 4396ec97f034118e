package pipeline

import (
	"context"
	"time"

	"github.com/okian/marquee/internal/adapters/corpus"
	"github.com/okian/marquee/internal/domain/dedupe"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/pkg/metrics"
)

// Cleaning thresholds. Rows at or below these are provider garbage
// (unreported financials stored as 0 or placeholder values).
const (
	minBudget  = 10_000
	minRevenue = 10_000
)

// dateLayout is the provider's release date format.
const dateLayout = "2006-01-02"

// Diagnostics counts what cleaning excluded or defaulted. Malformed
// fields do not exclude a row; they degrade to the documented default
// and are counted here instead of being silently swallowed.
type Diagnostics struct {
	RowsIn              int
	RowsKept            int
	Duplicates          int
	LowBudget           int
	LowRevenue          int
	BadDates            int
	MalformedGenres     int
	MalformedCrew       int
	MalformedCast       int
	MalformedCollection int
}

// Clean filters and converts raw rows into domain movies. Exclusion
// rules: duplicate id, budget or revenue at or below the garbage
// threshold, unparseable release date. Inflation multipliers are
// looked up by release year; a missing year passes through at 1.0.
func Clean(ctx context.Context, raw []corpus.RawMovie, inflation map[int]float64, deduper dedupe.Deduper) ([]model.Movie, Diagnostics) {
	var diag Diagnostics
	diag.RowsIn = len(raw)

	out := make([]model.Movie, 0, len(raw))
	for i := range raw {
		r := &raw[i]

		if deduper.SeenAndRecord(ctx, r.ID) {
			diag.Duplicates++
			metrics.RecordCorpusRowSkipped("duplicate")
			continue
		}
		if r.Budget <= minBudget {
			diag.LowBudget++
			metrics.RecordCorpusRowSkipped("low_budget")
			continue
		}
		if r.Revenue <= minRevenue {
			diag.LowRevenue++
			metrics.RecordCorpusRowSkipped("low_revenue")
			continue
		}
		released, err := time.Parse(dateLayout, r.ReleaseDate)
		if err != nil {
			diag.BadDates++
			metrics.RecordCorpusRowSkipped("bad_date")
			continue
		}

		genres, err := corpus.Genres(r.GenresJSON)
		if err != nil {
			diag.MalformedGenres++
			metrics.RecordCorpusMalformedField("genres")
		}
		director, err := corpus.Director(r.CrewJSON)
		if err != nil {
			diag.MalformedCrew++
			metrics.RecordCorpusMalformedField("crew")
		}
		actor, err := corpus.TopActor(r.CastJSON)
		if err != nil {
			diag.MalformedCast++
			metrics.RecordCorpusMalformedField("cast")
		}
		franchise, err := corpus.IsFranchise(r.BelongsToCollection)
		if err != nil {
			diag.MalformedCollection++
			metrics.RecordCorpusMalformedField("collection")
		}

		factor, ok := inflation[released.Year()]
		if !ok {
			factor = 1.0
		}

		out = append(out, model.Movie{
			ID:           r.ID,
			Title:        r.Title,
			ReleaseDate:  released,
			ReleaseYear:  released.Year(),
			ReleaseMonth: int(released.Month()),
			BudgetAdj:    r.Budget * factor,
			RevenueAdj:   r.Revenue * factor,
			Runtime:      r.Runtime,
			Genres:       genres,
			Director:     director,
			TopActor:     actor,
			IsFranchise:  franchise,
		})
		metrics.RecordCorpusRowParsed()
	}
	diag.RowsKept = len(out)
	return out, diag
}
