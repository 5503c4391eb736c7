// Package dedupe defines idempotency tracking for match submissions.
//
// Recording a result mutates ratings, so a retried or double-clicked
// submission must be detected before any rating update is applied.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen submission IDs to ensure at-most-once recording.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID from the seen set, allowing a retry. Used when
	// a submission was marked seen but failed to persist.
	Unrecord(ctx context.Context, id string)

	// Size returns the current number of tracked IDs.
	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus a FIFO eviction ring.
// With maxSize <= 0 the set is unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, oldest first; unused when unbounded
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 10000,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			// Evict the oldest recorded ID.
			oldest := d.order[0]
			d.order = d.order[1:]
			delete(d.seen, oldest)
		}
		d.order = append(d.order, id)
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
