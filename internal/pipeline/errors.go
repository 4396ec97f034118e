package pipeline

import "errors"

// Sentinel kinds for pipeline errors.
var (
	ErrEmptyCorpus = errors.New("empty corpus")
	ErrNoAPIKey    = errors.New("metadata provider API key not configured")
)
