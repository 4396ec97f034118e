package corpus

import "errors"

// Sentinel kinds for corpus errors.
var (
	ErrCorpusUnreadable = errors.New("corpus unreadable")
)
