// Package loop turns a variable-rate frame callback into a fixed logical
// update cadence. The policy lives behind the Clock interface so it can be
// driven by plain timestamps in tests.
package loop

import "time"

// Clock decides how many logical ticks to run for the time that passed.
type Clock interface {
	// Advance adds elapsed time and returns the number of ticks due at the
	// given tick interval.
	Advance(elapsed, interval time.Duration) int
	// Reset discards any accumulated time.
	Reset()
}

// CoalescingClock runs at most one tick per frame. When several intervals
// have elapsed (a stalled frame) they collapse into a single tick and only
// the fractional remainder is carried over, so there is no drift and no
// burst of catch-up moves.
type CoalescingClock struct {
	pending time.Duration // Time since the last logical update
}

// NewCoalescingClock returns the default clock policy.
func NewCoalescingClock() *CoalescingClock {
	return &CoalescingClock{}
}

// Advance implements Clock.
func (c *CoalescingClock) Advance(elapsed, interval time.Duration) int {
	if elapsed > 0 {
		c.pending += elapsed
	}
	if interval <= 0 || c.pending < interval {
		return 0
	}
	c.pending %= interval
	return 1
}

// Reset implements Clock.
func (c *CoalescingClock) Reset() {
	c.pending = 0
}

// Pending returns the time accumulated toward the next tick.
func (c *CoalescingClock) Pending() time.Duration {
	return c.pending
}

// CatchUpClock replays every whole interval that elapsed, up to MaxTicks per
// frame. Time beyond the cap is dropped.
type CatchUpClock struct {
	MaxTicks int
	pending  time.Duration
}

// NewCatchUpClock returns a clock that replays up to maxTicks per frame.
func NewCatchUpClock(maxTicks int) *CatchUpClock {
	return &CatchUpClock{MaxTicks: max(maxTicks, 1)}
}

// Advance implements Clock.
func (c *CatchUpClock) Advance(elapsed, interval time.Duration) int {
	if elapsed > 0 {
		c.pending += elapsed
	}
	if interval <= 0 || c.pending < interval {
		return 0
	}
	ticks := int(c.pending / interval)
	c.pending %= interval
	if ticks > c.MaxTicks {
		ticks = c.MaxTicks
	}
	return ticks
}

// Reset implements Clock.
func (c *CatchUpClock) Reset() {
	c.pending = 0
}
