// Package fetcher guards per-entity fetches keyed by a changing identifier
// (the "changing subscription key" problem): every request is tagged with the
// key it was issued for, and a completion is delivered only while that key is
// still the current one. A late response for a superseded key is discarded,
// success and failure alike, so it can never overwrite newer data.
package fetcher

import (
	"context"
	"sync"
)

// Fetcher runs at most one logical fetch at a time for one view. Starting a
// new fetch supersedes and cancels the previous one.
type Fetcher[T any] struct {
	mu      sync.Mutex
	gen     uint64
	key     string
	cancel  context.CancelFunc
	deliver func(key string, value T, err error)
}

// New creates a Fetcher delivering completions through deliver. deliver runs
// on the fetch goroutine with the fetcher locked and must not call back into
// the fetcher.
func New[T any](deliver func(key string, value T, err error)) *Fetcher[T] {
	return &Fetcher[T]{deliver: deliver}
}

// Start begins a fetch for key, superseding any fetch still in flight. The
// superseded request's context is cancelled so a hung request does not
// outlive its usefulness.
func (f *Fetcher[T]) Start(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) {
	f.mu.Lock()
	f.gen++
	myGen := f.gen
	if f.cancel != nil {
		f.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.key = key
	f.mu.Unlock()

	go func() {
		value, err := fn(fctx)
		cancel()

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen != myGen {
			return // superseded while in flight
		}
		f.deliver(key, value, err)
	}()
}

// Key returns the key of the most recently started fetch.
func (f *Fetcher[T]) Key() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.key
}

// Close cancels any in-flight fetch and suppresses its delivery. Used on
// view teardown.
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
