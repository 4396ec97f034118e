package schema

import "errors"

// Sentinel kinds for schema artifact errors. Both are fatal-class:
// serving must not start without a verified schema.
var (
	ErrArtifactUnreadable = errors.New("schema artifact unreadable")
	ErrHashMismatch       = errors.New("schema content hash mismatch")
)
