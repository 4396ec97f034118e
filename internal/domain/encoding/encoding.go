// Package encoding expands closed-vocabulary categorical attributes
// (release season, genres) into indicator features.
//
// Feature names are prefix + label, e.g. "season_Holiday_Season" and
// "genre_Action". The naming is a fixed convention so inference-time
// code can reconstruct a name without access to the training corpus.
package encoding

import (
	"sort"
	"strings"

	"github.com/okian/marquee/internal/domain/model"
)

// Indicator feature name prefixes.
const (
	SeasonPrefix = "season_"
	GenrePrefix  = "genre_"
)

// Season bucket labels. Labels use underscores so the full feature name
// is a single token; UI-facing labels with spaces are normalized before
// name construction.
const (
	SeasonSummer   = "Summer_Blockbuster"
	SeasonHoliday  = "Holiday_Season"
	SeasonDump     = "Dump_Months"
	SeasonShoulder = "Spring_Fall"
	SeasonUnknown  = "Unknown"
)

// SeasonForMonth buckets a release month (1-12) into one of the four
// season labels. Out-of-range months map to SeasonUnknown.
func SeasonForMonth(month int) string {
	switch month {
	case 5, 6, 7:
		return SeasonSummer
	case 11, 12:
		return SeasonHoliday
	case 1, 2, 8, 9:
		return SeasonDump
	case 3, 4, 10:
		return SeasonShoulder
	default:
		return SeasonUnknown
	}
}

// NormalizeSeasonLabel maps a user-facing season label ("Holiday
// Season") onto the canonical underscore form used in feature names.
// Already-canonical labels pass through unchanged.
func NormalizeSeasonLabel(label string) string {
	return strings.ReplaceAll(strings.TrimSpace(label), " ", "_")
}

// SeasonFeature returns the indicator feature name for a season label.
func SeasonFeature(label string) string {
	return SeasonPrefix + NormalizeSeasonLabel(label)
}

// GenreFeature returns the indicator feature name for a genre. Genre
// names are used verbatim: the training vocabulary keeps whatever the
// metadata provider calls them, spaces included ("Science Fiction").
func GenreFeature(name string) string {
	return GenrePrefix + strings.TrimSpace(name)
}

// Vocabulary is the closed set of category values observed in a
// training corpus. Categories never observed have no feature and
// cannot be represented later; that is the schema contract.
type Vocabulary struct {
	seasons map[string]struct{}
	genres  map[string]struct{}
}

// BuildVocabulary scans the corpus once and collects every distinct
// season bucket and genre name.
func BuildVocabulary(movies []model.Movie) *Vocabulary {
	v := &Vocabulary{
		seasons: make(map[string]struct{}),
		genres:  make(map[string]struct{}),
	}
	for i := range movies {
		v.seasons[SeasonForMonth(movies[i].ReleaseMonth)] = struct{}{}
		for _, g := range movies[i].Genres {
			if g = strings.TrimSpace(g); g != "" {
				v.genres[g] = struct{}{}
			}
		}
	}
	return v
}

// SeasonFeatures returns the observed season indicator names, sorted
// for a deterministic schema order.
func (v *Vocabulary) SeasonFeatures() []string {
	return prefixedSorted(SeasonPrefix, v.seasons)
}

// GenreFeatures returns the observed genre indicator names, sorted.
func (v *Vocabulary) GenreFeatures() []string {
	return prefixedSorted(GenrePrefix, v.genres)
}

// Indicators returns the indicator features set to 1 for a movie: its
// single season bucket plus one entry per genre. Seasons are mutually
// exclusive by construction; genres are not.
func (v *Vocabulary) Indicators(m model.Movie) map[string]struct{} {
	out := make(map[string]struct{}, 1+len(m.Genres))
	out[SeasonPrefix+SeasonForMonth(m.ReleaseMonth)] = struct{}{}
	for _, g := range m.Genres {
		if g = strings.TrimSpace(g); g != "" {
			out[GenrePrefix+g] = struct{}{}
		}
	}
	return out
}

func prefixedSorted(prefix string, set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for label := range set {
		out = append(out, prefix+label)
	}
	sort.Strings(out)
	return out
}
