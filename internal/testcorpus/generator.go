// Package testcorpus generates synthetic raw corpora for tests and
// local runs, shaped exactly like the provider CSV the pipeline
// consumes: embedded JSON columns included.
package testcorpus

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/marquee/internal/adapters/corpus"
)

// Generation pools. Small on purpose so repeated talent and genres
// exercise the ledgers.
var (
	genrePool = []string{
		"Action", "Adventure", "Animation", "Comedy", "Drama",
		"Science Fiction", "Horror", "Thriller",
	}
	directorPool = []string{
		"Ava Moreno", "Bela Kiss", "Chidi Okafor", "Dana Petrov",
		"Unknown",
	}
	actorPool = []string{
		"Elias Stone", "Freja Lund", "Goro Tanaka", "Hana Weiss",
		"Iris Calder", "Unknown",
	}
)

// Generator produces deterministic synthetic raw movies.
type Generator struct {
	rng    *rand.Rand
	nextID int64
}

// New creates a generator seeded for reproducibility.
func New(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // synthetic data
		nextID: 1,
	}
}

// Movies generates n raw movies with release dates spread over the
// year range and financials large enough to survive cleaning.
func (g *Generator) Movies(n, startYear, endYear int) []corpus.RawMovie {
	out := make([]corpus.RawMovie, 0, n)
	years := endYear - startYear + 1
	for i := 0; i < n; i++ {
		year := startYear + g.rng.Intn(years)
		month := 1 + g.rng.Intn(12)
		day := 1 + g.rng.Intn(28)
		released := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

		budget := float64(20+g.rng.Intn(180)) * 1e6
		revenue := budget * (0.5 + g.rng.Float64()*3)

		id := g.nextID
		g.nextID++

		out = append(out, corpus.RawMovie{
			ID:                  id,
			Title:               fmt.Sprintf("Feature %d", id),
			ReleaseDate:         released.Format("2006-01-02"),
			Budget:              budget,
			Revenue:             revenue,
			Runtime:             float64(85 + g.rng.Intn(80)),
			Popularity:          g.rng.Float64() * 100,
			VoteAverage:         4 + g.rng.Float64()*5,
			VoteCount:           int64(g.rng.Intn(20000)),
			OriginalLanguage:    "en",
			GenresJSON:          g.genresJSON(),
			BelongsToCollection: g.collectionJSON(id),
			CastJSON:            g.castJSON(),
			CrewJSON:            g.crewJSON(),
		})
	}
	return out
}

func (g *Generator) genresJSON() string {
	count := 1 + g.rng.Intn(3)
	s := "["
	for i := 0; i < count; i++ {
		if i > 0 {
			s += ","
		}
		name := genrePool[g.rng.Intn(len(genrePool))]
		s += fmt.Sprintf(`{"id":%d,"name":%q}`, 10+i, name)
	}
	return s + "]"
}

func (g *Generator) collectionJSON(id int64) string {
	if g.rng.Intn(4) != 0 {
		return "null"
	}
	return fmt.Sprintf(`{"id":%d,"name":"Collection %d"}`, id*100, id)
}

func (g *Generator) castJSON() string {
	name := actorPool[g.rng.Intn(len(actorPool))]
	if name == "Unknown" {
		return "[]"
	}
	return fmt.Sprintf(`[{"name":%q,"order":0},{"name":"Background Player","order":1}]`, name)
}

func (g *Generator) crewJSON() string {
	name := directorPool[g.rng.Intn(len(directorPool))]
	if name == "Unknown" {
		return `[{"name":"Some Editor","job":"Editor"}]`
	}
	return fmt.Sprintf(`[{"name":"Some Editor","job":"Editor"},{"name":%q,"job":"Director"}]`, name)
}
