package anim

import (
	"sync"
	"time"
)

// Clock is the time source for animation progress.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic component.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable clock for tests and offline rendering.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Progress returns the eased progress of an animation started at start
// lasting d, evaluated at now. A non-positive duration is complete.
func Progress(start, now time.Time, d time.Duration, ease Easing) float64 {
	if d <= 0 {
		return 1
	}
	t := clamp01(float64(now.Sub(start)) / float64(d))
	if ease == nil || t >= 1 {
		return t
	}
	return ease(t)
}
