// Package temporal derives leakage-free star-power scores by walking
// the corpus in release order.
//
// The contract is read-before-write: a movie's scores are computed from
// ledger state as it stood before that movie, then the ledgers are
// updated with the movie's own revenue. By construction no score ever
// reflects the movie itself or anything released after it.
package temporal

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/marquee/internal/domain/ledger"
	"github.com/okian/marquee/internal/domain/model"
)

// millionsScale converts dollar means to the millions unit scores use.
const millionsScale = 1_000_000

// Score is the pair of star-power features computed for one movie,
// denominated in millions of dollars.
type Score struct {
	Director float64
	Actor    float64
}

// Aggregator owns the two talent ledgers for a single pass. Directors
// and lead actors are tracked independently: a name appearing in both
// roles accumulates separate state in each ledger.
type Aggregator struct {
	directors *ledger.Ledger
	actors    *ledger.Ledger
	ran       bool
}

// New creates an aggregator with empty ledgers.
func New() *Aggregator {
	return &Aggregator{
		directors: ledger.New(),
		actors:    ledger.New(),
	}
}

// Run sorts movies by release date ascending (stable, so same-day
// releases keep their input order) and computes a Score per movie in a
// single left-to-right pass. It returns the sorted movies alongside
// scores aligned index-for-index with them.
//
// Run consumes the aggregator's ledgers; calling it twice on the same
// Aggregator would double-count history, so it errors on reuse.
func (a *Aggregator) Run(ctx context.Context, movies []model.Movie) ([]model.Movie, []Score, error) {
	if a.ran {
		return nil, nil, fmt.Errorf("aggregator already ran: %w", ErrAlreadyRan)
	}
	a.ran = true

	sorted := make([]model.Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReleaseDate.Before(sorted[j].ReleaseDate)
	})

	scores := make([]Score, 0, len(sorted))
	for i := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("aggregation cancelled: %w", err)
		}
		scores = append(scores, a.step(sorted[i]))
	}
	return sorted, scores, nil
}

// step computes the movie's scores from prior state, then folds the
// movie's own revenue into both ledgers.
func (a *Aggregator) step(m model.Movie) Score {
	s := Score{
		Director: priorMean(a.directors, m.Director),
		Actor:    priorMean(a.actors, m.TopActor),
	}
	a.directors.Record(m.Director, m.RevenueAdj)
	a.actors.Record(m.TopActor, m.RevenueAdj)
	return s
}

// priorMean returns name's mean revenue over strictly prior movies in
// millions. Unknown talent and first appearances score zero; the
// zero-count branch guarantees the division below never sees count 0.
func priorMean(l *ledger.Ledger, name string) float64 {
	if name == model.UnknownTalent {
		return 0
	}
	sum, count := l.Lookup(name)
	if count == 0 {
		return 0
	}
	return sum / float64(count) / millionsScale
}

// Directors exposes the final director ledger after Run, for rankings.
func (a *Aggregator) Directors() *ledger.Ledger { return a.directors }

// Actors exposes the final actor ledger after Run, for rankings.
func (a *Aggregator) Actors() *ledger.Ledger { return a.actors }
