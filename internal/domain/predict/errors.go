package predict

import "errors"

// Sentinel kinds for model errors.
var (
	ErrEmptyTrainingSet   = errors.New("empty training set")
	ErrDimensionMismatch  = errors.New("feature dimension mismatch")
	ErrArtifactUnreadable = errors.New("model artifact unreadable")
	ErrSchemaMismatch     = errors.New("model trained against a different schema")
)
