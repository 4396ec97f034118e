// Package schema defines the canonical feature schema: the ordered
// feature-name list fixed once training completes and required,
// unchanged, by every later prediction.
//
// Schema drift between training and serving is the one silent-failure
// class this system has, so the persisted artifact carries a content
// hash and loading verifies it structurally instead of trusting the
// caller to notice nonsensical predictions.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

// Names of the directly-supplied numeric features. Indicator features
// are named by the encoding package's prefix convention.
const (
	FeatureBudget        = "budget_adj"
	FeatureRuntime       = "runtime"
	FeatureFranchise     = "is_franchise"
	FeatureDirectorScore = "director_score"
	FeatureActorScore    = "actor_score"
)

// artifactVersion guards the on-disk layout, not the feature content.
const artifactVersion = 1

// Schema is an immutable ordered sequence of feature names plus a
// content hash over them. Index positions are the contract: a vector's
// entry i corresponds to Features()[i], always.
type Schema struct {
	features []string
	index    map[string]int
	hash     string
}

// New builds a schema from an ordered feature list. Order is
// significant and preserved exactly.
func New(features []string) *Schema {
	s := &Schema{
		features: make([]string, len(features)),
		index:    make(map[string]int, len(features)),
	}
	copy(s.features, features)
	for i, name := range s.features {
		s.index[name] = i
	}
	s.hash = contentHash(s.features)
	return s
}

// Features returns a copy of the ordered feature names.
func (s *Schema) Features() []string {
	out := make([]string, len(s.features))
	copy(out, s.features)
	return out
}

// Len returns the number of features, i.e. the vector width.
func (s *Schema) Len() int { return len(s.features) }

// Index returns the position of name and whether it exists.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Hash returns the hex SHA-256 over the ordered feature names. Two
// schemas with the same names in the same order hash identically.
func (s *Schema) Hash() string { return s.hash }

// artifact is the persisted JSON layout.
type artifact struct {
	Version  int      `json:"version"`
	Hash     string   `json:"hash"`
	Features []string `json:"features"`
}

// Save writes the schema artifact to path, replacing any existing file.
func (s *Schema) Save(path string) error {
	raw, err := json.MarshalIndent(artifact{
		Version:  artifactVersion,
		Hash:     s.hash,
		Features: s.features,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema artifact: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write schema artifact: %w", err)
	}
	return nil
}

// Load reads a schema artifact and verifies its content hash. A
// missing file or a hash mismatch is a hard failure: no meaningful
// prediction can be made against an untrusted schema.
func Load(path string) (*Schema, error) {
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
	s := New(a.Features)
	if s.hash != a.Hash {
		return nil, fmt.Errorf("%w: stored %s, computed %s", ErrHashMismatch, a.Hash, s.hash)
	}
	return s, nil
}

// contentHash hashes the ordered names with a separator that cannot
// occur inside a feature name.
func contentHash(features []string) string {
	sum := sha256.Sum256([]byte(strings.Join(features, "\n")))
	return hex.EncodeToString(sum[:])
}
