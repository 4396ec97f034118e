package temporal

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrAlreadyRan = errors.New("aggregation pass already consumed")
)
