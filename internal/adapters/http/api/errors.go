package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadKind  = errors.New("kind must be director or actor")
	ErrBadLimit = errors.New("invalid leaderboard limit")
)
