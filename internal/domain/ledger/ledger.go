// Package ledger maintains per-talent running revenue totals used to
// derive star-power scores. A ledger is an explicit state object owned
// by the aggregation pass that creates it; nothing is shared or global.
package ledger

import (
	"sort"

	"github.com/okian/marquee/internal/domain/model"
)

// entry holds the accumulated state for one talent name.
type entry struct {
	sum   float64 // revenue from strictly earlier movies, dollars
	count int     // prior appearances
}

// Ledger tracks cumulative revenue and appearance counts per talent.
// Keys are exact name strings; there is no fuzzy matching. Records are
// created on first observation and never deleted.
type Ledger struct {
	entries map[string]entry
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string]entry)}
}

// Lookup returns the accumulated revenue sum and appearance count for
// name. Unseen names and the Unknown sentinel both yield (0, 0).
func (l *Ledger) Lookup(name string) (sum float64, count int) {
	e, ok := l.entries[name]
	if !ok {
		return 0, 0
	}
	return e.sum, e.count
}

// Record adds revenue to name's running total and increments its
// appearance count, creating the record if absent. Recording the
// Unknown sentinel is a no-op: unknown talent never accumulates state.
func (l *Ledger) Record(name string, revenue float64) {
	if name == model.UnknownTalent {
		return
	}
	e := l.entries[name]
	e.sum += revenue
	e.count++
	l.entries[name] = e
}

// Size returns the number of distinct talents tracked.
func (l *Ledger) Size() int {
	return len(l.entries)
}

// Scores returns the final standing of every tracked talent as mean
// historical revenue in millions, sorted by mean descending with name
// ascending as the tie-break. Intended for post-aggregation rankings.
func (l *Ledger) Scores() []model.TalentScore {
	out := make([]model.TalentScore, 0, len(l.entries))
	for name, e := range l.entries {
		out = append(out, model.TalentScore{
			Name:        name,
			MeanRevenue: e.sum / float64(e.count) / millionsScale,
			Appearances: e.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanRevenue != out[j].MeanRevenue {
			return out[i].MeanRevenue > out[j].MeanRevenue
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// millionsScale converts dollar sums to the millions unit used by scores.
const millionsScale = 1_000_000
