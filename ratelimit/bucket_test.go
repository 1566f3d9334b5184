package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances instantly through every sleep, recording the requested
// durations, so pacing tests run in simulated time.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// dispatchTimes drives n sequential acquire/release cycles and returns the
// simulated time of each dispatch.
func dispatchTimes(t *testing.T, b *Bucket, clock *fakeClock, n int) []time.Time {
	t.Helper()
	ctx := context.Background()

	times := make([]time.Time, 0, n)
	for range n {
		require.NoError(t, b.Acquire(ctx))
		times = append(times, clock.Now())
		b.Release()
	}
	return times
}

// TestBucket_SpacingBetweenDispatches verifies the 2-second minimum between
// consecutive dispatches.
func TestBucket_SpacingBetweenDispatches(t *testing.T) {
	clock := newFakeClock()
	b := NewBucket(30, 60*time.Second, 2*time.Second, clock)

	times := dispatchTimes(t, b, clock, 5)

	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i].Sub(times[i-1]), 2*time.Second,
			"dispatch %d followed too closely", i)
	}
}

// TestBucket_ReservoirBoundary verifies that the 31st of 31 back-to-back
// requests queues until the 60-second refill boundary rather than failing.
func TestBucket_ReservoirBoundary(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()
	b := NewBucket(30, 60*time.Second, 2*time.Second, clock)

	times := dispatchTimes(t, b, clock, 31)

	// The first 30 dispatches fit in the window at 2-second spacing; the
	// 31st must wait for the full refill.
	assert.Equal(t, start.Add(58*time.Second), times[29])
	assert.Equal(t, start.Add(60*time.Second), times[30])

	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i].Sub(times[i-1]), 2*time.Second)
	}
}

// TestBucket_RefillIsFull verifies that a fresh window grants the whole
// capacity again, not a partial top-up.
func TestBucket_RefillIsFull(t *testing.T) {
	clock := newFakeClock()
	b := NewBucket(30, 60*time.Second, 2*time.Second, clock)

	times := dispatchTimes(t, b, clock, 61)

	// 30 dispatches per window: windows open at 0s, 60s, and 120s.
	boundary := times[0].Add(120 * time.Second)
	assert.Equal(t, boundary, times[60])
}

// TestBucket_IdleGapDoesNotAccumulate verifies an idle bucket never grants
// more than its capacity in one window.
func TestBucket_IdleGapDoesNotAccumulate(t *testing.T) {
	clock := newFakeClock()
	b := NewBucket(2, 60*time.Second, 2*time.Second, clock)

	// Burn the first window, then sit idle across several refills.
	dispatchTimes(t, b, clock, 2)
	clock.now = clock.now.Add(10 * time.Minute)

	times := dispatchTimes(t, b, clock, 3)

	// Only two permits exist per window regardless of the idle gap.
	assert.Less(t, times[1].Sub(times[0]), 60*time.Second)
	assert.GreaterOrEqual(t, times[2].Sub(times[0]), 2*time.Second)
	assert.True(t, times[2].After(times[1].Add(time.Second)))
}

// TestBucket_AcquireCancelledWhileQueued verifies that context cancellation
// interrupts a queued request.
func TestBucket_AcquireCancelledWhileQueued(t *testing.T) {
	clock := newFakeClock()
	b := NewBucket(30, 60*time.Second, 2*time.Second, clock)

	ctx := context.Background()
	require.NoError(t, b.Acquire(ctx))
	b.Release()

	// The next acquire owes 2 seconds of spacing; cancelling first aborts
	// the wait.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := b.Acquire(cancelled)
	assert.ErrorIs(t, err, context.Canceled)

	// The in-flight slot must have been released on the error path.
	require.NoError(t, b.Acquire(ctx))
	b.Release()
}

// TestBucket_SingleRequestInFlight verifies the in-flight bound: a second
// acquire blocks until the first releases.
func TestBucket_SingleRequestInFlight(t *testing.T) {
	clock := newFakeClock()
	b := NewBucket(30, 60*time.Second, 0, clock)

	ctx := context.Background()
	require.NoError(t, b.Acquire(ctx))

	second := make(chan error, 1)
	go func() {
		second <- b.Acquire(ctx)
	}()

	select {
	case <-second:
		t.Fatal("second acquire should block while the first is in flight")
	case <-time.After(50 * time.Millisecond):
	}

	b.Release()
	require.NoError(t, <-second)
	b.Release()
}
