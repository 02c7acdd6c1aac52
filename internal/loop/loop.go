package loop

import (
	"fmt"
	"time"
)

// Game is the part of the game model the loop drives.
type Game interface {
	// Update advances the simulation by one logical tick.
	Update()
	// Interval is the current time between logical ticks.
	Interval() time.Duration
	// Running reports whether further frames are wanted.
	Running() bool
}

// FrameResult reports what one frame did.
type FrameResult struct {
	Ticks    int  // Logical updates run this frame
	Continue bool // Whether the host should schedule another frame
}

// Updated reports whether at least one logical update ran.
func (r FrameResult) Updated() bool {
	return r.Ticks > 0
}

// Loop converts frame timestamps into logical updates of a Game.
// It is not safe for concurrent use; one frame runs to completion before
// the next starts.
type Loop struct {
	game    Game
	clock   Clock
	last    time.Duration // Timestamp of the previous frame
	running bool
}

// New creates a stopped loop. A nil clock selects the coalescing policy.
func New(game Game, clock Clock) *Loop {
	if clock == nil {
		clock = NewCoalescingClock()
	}
	return &Loop{game: game, clock: clock}
}

// NewClock builds the clock for a named policy: "coalesce" (default) or
// "catchup". maxTicks caps the catch-up policy.
func NewClock(policy string, maxTicks int) (Clock, error) {
	switch policy {
	case "", "coalesce":
		return NewCoalescingClock(), nil
	case "catchup":
		return NewCatchUpClock(maxTicks), nil
	}
	return nil, fmt.Errorf("loop: unknown clock policy %q", policy)
}

// Start begins a run at timestamp now. Time before now never counts toward
// a tick.
func (l *Loop) Start(now time.Duration) {
	l.clock.Reset()
	l.last = now
	l.running = true
}

// Stop cancels the run. Subsequent frames do nothing until Start.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether the loop expects more frames.
func (l *Loop) Running() bool {
	return l.running
}

// Frame handles one frame callback at timestamp now. When the game stops
// running the loop stops itself and reports Continue=false.
func (l *Loop) Frame(now time.Duration) FrameResult {
	if !l.running {
		return FrameResult{}
	}

	elapsed := now - l.last
	l.last = now

	ticks := l.clock.Advance(elapsed, l.game.Interval())
	ran := 0
	for range ticks {
		l.game.Update()
		ran++
		if !l.game.Running() {
			break
		}
	}

	if !l.game.Running() {
		l.running = false
	}
	return FrameResult{Ticks: ran, Continue: l.running}
}
