// Package corpus reads and writes the raw movie corpus CSV.
//
// The raw layout mirrors what the metadata provider returns: scalar
// columns plus four columns holding embedded JSON (genres, collection,
// cast, crew) stored as strings to keep the CSV flat. Parsing those
// columns into domain values lives in parse.go.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/okian/marquee/pkg/metrics"
)

// RawMovie is one row of the raw corpus CSV, before cleaning.
type RawMovie struct {
	ID                  int64
	Title               string
	ReleaseDate         string // provider date string, expected YYYY-MM-DD
	Budget              float64
	Revenue             float64
	Runtime             float64
	Popularity          float64
	VoteAverage         float64
	VoteCount           int64
	OriginalLanguage    string
	GenresJSON          string
	BelongsToCollection string
	CastJSON            string
	CrewJSON            string
}

// header is the canonical raw CSV column order.
var header = []string{
	"id", "title", "release_date", "budget", "revenue", "runtime",
	"popularity", "vote_average", "vote_count", "original_language",
	"genres", "belongs_to_collection", "cast", "crew",
}

// Read loads the raw corpus from path. A missing or unreadable file is
// a hard failure. Structurally malformed rows (wrong field count, bad
// quoting) are skipped and counted, not fatal: one broken row must not
// take the rest of the corpus with it. Rows with non-numeric scalar
// fields come back with zero values in those fields and are left to
// the cleaning stage's filters.
func Read(path string) ([]RawMovie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusUnreadable, err)
	}
	defer f.Close() //nolint:errcheck // read-only descriptor

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row width checked per record below

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("%w: missing header: %w", ErrCorpusUnreadable, err)
	}

	var out []RawMovie
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				metrics.RecordCorpusRowSkipped("malformed_row")
				continue
			}
			return nil, fmt.Errorf("%w: %w", ErrCorpusUnreadable, err)
		}
		if len(rec) != len(header) {
			metrics.RecordCorpusRowSkipped("malformed_row")
			continue
		}
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

// Write stores rows at path in the canonical column order, replacing
// any existing file.
func Write(path string, rows []RawMovie) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write corpus header: %w", err)
	}
	for i := range rows {
		if err := w.Write(toRecord(&rows[i])); err != nil {
			_ = f.Close()
			return fmt.Errorf("write corpus row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush corpus file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close corpus file: %w", err)
	}
	return nil
}

func fromRecord(rec []string) RawMovie {
	return RawMovie{
		ID:                  parseInt(rec[0]),
		Title:               rec[1],
		ReleaseDate:         rec[2],
		Budget:              parseFloat(rec[3]),
		Revenue:             parseFloat(rec[4]),
		Runtime:             parseFloat(rec[5]),
		Popularity:          parseFloat(rec[6]),
		VoteAverage:         parseFloat(rec[7]),
		VoteCount:           parseInt(rec[8]),
		OriginalLanguage:    rec[9],
		GenresJSON:          rec[10],
		BelongsToCollection: rec[11],
		CastJSON:            rec[12],
		CrewJSON:            rec[13],
	}
}

func toRecord(m *RawMovie) []string {
	return []string{
		strconv.FormatInt(m.ID, 10),
		m.Title,
		m.ReleaseDate,
		formatFloat(m.Budget),
		formatFloat(m.Revenue),
		formatFloat(m.Runtime),
		formatFloat(m.Popularity),
		formatFloat(m.VoteAverage),
		strconv.FormatInt(m.VoteCount, 10),
		m.OriginalLanguage,
		m.GenresJSON,
		m.BelongsToCollection,
		m.CastJSON,
		m.CrewJSON,
	}
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
