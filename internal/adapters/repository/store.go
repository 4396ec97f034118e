// Package repository holds the star-power rankings derived from the
// final ledger state of a training run.
//
// Unlike the ledgers themselves, which live and die with the
// aggregation pass, rankings are persisted next to the other training
// artifacts and served read-only: serving never mutates them.
package repository

import "context"

// Talent kinds tracked by the rankings.
const (
	KindDirector = "director"
	KindActor    = "actor"
)

// Entry is one ranked talent row.
type Entry struct {
	Rank        int     `json:"rank"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	MeanRevenue float64 `json:"mean_revenue_millions"`
	Appearances int     `json:"appearances"`
}

// Store provides read access to talent rankings.
type Store interface {
	// TopN returns the top-n talents of kind by mean historical
	// revenue descending.
	TopN(ctx context.Context, kind string, n int) ([]Entry, error)

	// Rank returns the entry for one exact talent name.
	// Returns ErrNotFound when the talent is unknown.
	Rank(ctx context.Context, kind, name string) (Entry, error)

	// Count returns the number of talents tracked for kind.
	Count(ctx context.Context, kind string) int
}
