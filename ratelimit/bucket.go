// Package ratelimit bounds outbound traffic to the source site. A token
// bucket holds a fixed number of permits that refill fully on a period;
// dispatches additionally keep a minimum spacing, and at most one request is
// in flight at a time. Requests beyond the bucket's capacity queue until the
// next refill rather than failing. The bucket is the only cross-call state
// in the system: every fetch, from whichever pipeline run, serializes
// through it.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Default pacing policy for the source site.
const (
	DefaultCapacity = 30
	DefaultRefill   = 60 * time.Second
	DefaultSpacing  = 2 * time.Second
)

// Bucket is a token bucket with full-window refills and dispatch spacing.
type Bucket struct {
	capacity int
	refill   time.Duration
	spacing  time.Duration
	clock    Clock

	// Capacity-1 semaphore enforcing the single-request-in-flight bound.
	inFlight chan struct{}

	mu           sync.Mutex
	windowStart  time.Time
	used         int
	lastDispatch time.Time
}

// NewBucket creates a bucket with the given policy. A nil clock selects the
// system clock; non-positive parameters fall back to the defaults.
func NewBucket(capacity int, refill, spacing time.Duration, clock Clock) *Bucket {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if refill <= 0 {
		refill = DefaultRefill
	}
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	if clock == nil {
		clock = SystemClock
	}

	return &Bucket{
		capacity: capacity,
		refill:   refill,
		spacing:  spacing,
		clock:    clock,
		inFlight: make(chan struct{}, 1),
	}
}

// Acquire blocks until a permit is available, the spacing since the previous
// dispatch has elapsed, and no other request is in flight. It returns the
// context's error if the caller's deadline expires while queued. Every
// successful Acquire must be paired with Release.
func (b *Bucket) Acquire(ctx context.Context) error {
	select {
	case b.inFlight <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	for {
		wait, ok := b.tryDispatch()
		if ok {
			return nil
		}

		if err := b.clock.Sleep(ctx, wait); err != nil {
			<-b.inFlight
			return err
		}
	}
}

// Release returns the in-flight slot. Permits themselves are not returned;
// they replenish only on the refill boundary.
func (b *Bucket) Release() {
	<-b.inFlight
}

// tryDispatch consumes a permit if the policy allows a dispatch now,
// otherwise reports how long to wait before re-evaluating.
func (b *Bucket) tryDispatch() (wait time.Duration, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()

	// The refill window opens on first use and advances in whole periods so
	// the reservoir boundary stays aligned regardless of idle gaps.
	if b.windowStart.IsZero() {
		b.windowStart = now
	}
	if elapsed := now.Sub(b.windowStart); elapsed >= b.refill {
		b.used = 0
		b.windowStart = b.windowStart.Add(elapsed.Truncate(b.refill))
	}

	if b.used >= b.capacity {
		wait = b.windowStart.Add(b.refill).Sub(now)
	}
	if !b.lastDispatch.IsZero() {
		if spacing := b.spacing - now.Sub(b.lastDispatch); spacing > wait {
			wait = spacing
		}
	}

	if wait > 0 {
		return wait, false
	}

	b.used++
	b.lastDispatch = now
	return 0, true
}
