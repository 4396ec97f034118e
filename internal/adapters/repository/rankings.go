package repository

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/okian/marquee/internal/domain/model"
)

// artifactVersion guards the on-disk layout of the rankings artifact.
const artifactVersion = 1

// RankingStore is the in-memory Store implementation. It is built once
// from ledger output (already sorted best-first) and never mutated, so
// reads need no locking.
type RankingStore struct {
	ranked map[string][]Entry        // kind -> sorted entries
	byName map[string]map[string]int // kind -> name -> index into ranked
}

// NewRankingStore creates an empty store.
func NewRankingStore() *RankingStore {
	return &RankingStore{
		ranked: make(map[string][]Entry),
		byName: make(map[string]map[string]int),
	}
}

// SetKind installs the ranking for one talent kind. scores must be
// sorted best-first, which is what ledger.Scores produces.
func (s *RankingStore) SetKind(kind string, scores []model.TalentScore) {
	entries := make([]Entry, len(scores))
	index := make(map[string]int, len(scores))
	for i, sc := range scores {
		entries[i] = Entry{
			Rank:        i + 1,
			Kind:        kind,
			Name:        sc.Name,
			MeanRevenue: sc.MeanRevenue,
			Appearances: sc.Appearances,
		}
		index[sc.Name] = i
	}
	s.ranked[kind] = entries
	s.byName[kind] = index
}

// TopN returns the best n talents of kind.
func (s *RankingStore) TopN(_ context.Context, kind string, n int) ([]Entry, error) {
	entries, ok := s.ranked[kind]
	if !ok {
		return nil, fmt.Errorf("kind %q: %w", kind, ErrUnknownKind)
	}
	if n < 1 {
		return nil, fmt.Errorf("limit %d: %w", n, ErrInvalidLimit)
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, n)
	copy(out, entries[:n])
	return out, nil
}

// Rank returns the entry for one exact talent name.
func (s *RankingStore) Rank(_ context.Context, kind, name string) (Entry, error) {
	index, ok := s.byName[kind]
	if !ok {
		return Entry{}, fmt.Errorf("kind %q: %w", kind, ErrUnknownKind)
	}
	i, ok := index[name]
	if !ok {
		return Entry{}, fmt.Errorf("talent %q: %w", name, ErrNotFound)
	}
	return s.ranked[kind][i], nil
}

// Count returns the number of talents tracked for kind.
func (s *RankingStore) Count(_ context.Context, kind string) int {
	return len(s.ranked[kind])
}

// artifact is the persisted JSON layout.
type artifact struct {
	Version  int                `json:"version"`
	Rankings map[string][]Entry `json:"rankings"`
}

// Save writes the rankings artifact to path.
func (s *RankingStore) Save(path string) error {
	raw, err := json.MarshalIndent(artifact{
		Version:  artifactVersion,
		Rankings: s.ranked,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rankings artifact: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write rankings artifact: %w", err)
	}
	return nil
}

// Load reads a rankings artifact written by Save.
func Load(path string) (*RankingStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnreadable, err)
	}
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnreadable, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: artifact version %d", ErrArtifactUnreadable, a.Version)
	}
	s := NewRankingStore()
	for kind, entries := range a.Rankings {
		index := make(map[string]int, len(entries))
		for i, e := range entries {
			index[e.Name] = i
		}
		s.ranked[kind] = entries
		s.byName[kind] = index
	}
	return s, nil
}
