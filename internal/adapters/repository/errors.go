package repository

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrNotFound           = errors.New("talent not found")
	ErrUnknownKind        = errors.New("unknown talent kind")
	ErrInvalidLimit       = errors.New("invalid ranking limit")
	ErrArtifactUnreadable = errors.New("rankings artifact unreadable")
)
