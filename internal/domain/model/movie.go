// Package model contains domain models passed between layers.
package model

import "time"

// UnknownTalent is the sentinel name for a movie whose director or lead
// actor could not be resolved. Unknown talent is never scored and never
// accumulates ledger state.
const UnknownTalent = "Unknown"

// Movie represents one cleaned historical record ready for feature
// derivation. Revenue and budget are inflation-adjusted dollars on a
// common basis; cross-year comparison is the cleaning stage's problem.
type Movie struct {
	ID           int64     // TMDB movie id, unique within the corpus
	Title        string
	ReleaseDate  time.Time // always resolvable; undated rows are dropped upstream
	ReleaseYear  int
	ReleaseMonth int       // 1-12
	BudgetAdj    float64   // inflation-adjusted budget, dollars
	RevenueAdj   float64   // inflation-adjusted worldwide revenue, dollars
	Runtime      float64   // minutes
	Genres       []string  // parsed genre names; empty when unparseable
	Director     string    // exact name or UnknownTalent
	TopActor     string    // #1 billed cast member or UnknownTalent
	IsFranchise  bool      // part of a collection
}

// LiveInput mirrors the prediction form: the handful of fields a user
// supplies at inference time. It is substantially smaller than the
// training schema; the vector builder fills the rest with zeros.
type LiveInput struct {
	BudgetMillions float64 // budget in millions of dollars
	Runtime        float64 // minutes
	IsFranchise    bool
	Season         string  // release-season label, e.g. "Holiday Season"
	PrimaryGenre   string  // single genre label, e.g. "Action"
	DirectorScore  float64 // director's mean past revenue, millions
	ActorScore     float64 // lead actor's mean past revenue, millions
}

// TalentScore captures a talent's historical standing used for rankings.
type TalentScore struct {
	Name        string
	MeanRevenue float64 // millions
	Appearances int
}
