package tmdb

import "errors"

// Sentinel kinds for provider errors.
var (
	ErrProviderUnavailable = errors.New("metadata provider unavailable")
	ErrBadYearRange        = errors.New("invalid year range")
)
