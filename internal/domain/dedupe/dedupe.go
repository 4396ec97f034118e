// Package dedupe tracks movie ids already admitted to the corpus so
// the same title is never counted twice.
//
// The metadata provider returns overlapping discover pages and the raw
// CSV may carry duplicates from resumed fetches, so both the fetcher
// and the cleaning stage funnel ids through a Deduper.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen movie ids for at-most-once corpus admission.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records
	// it if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id int64) bool

	// Size returns the number of distinct ids recorded.
	Size() int64
}

// defaultMaxSize comfortably covers 25 years of ten discover pages.
const defaultMaxSize = 500_000

// inMemoryDeduper implements Deduper with a mutex-guarded set. The
// corpus is bounded (tens of thousands of titles) so there is no
// eviction; maxSize only caps runaway inputs.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[int64]struct{}
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[int64]struct{})
	return d
}

// SeenAndRecord atomically checks and records id. When the set is at
// capacity new ids are reported as seen, which drops them from the
// corpus rather than growing without bound.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		return true
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the number of distinct ids recorded.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
