package stage

import (
	"sync"
	"time"
)

// Clock measures frame deltas and elapsed running time. One Clock is
// created per store and threaded through to frame subscribers unchanged.
//
// The time source is injectable so tests can advance it deterministically.
type Clock struct {
	mu      sync.Mutex
	now     func() time.Time
	last    time.Time
	elapsed time.Duration
	running bool
}

// NewClock returns a stopped clock reading time from now
// (nil means time.Now).
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start begins measuring. The first Delta after Start is zero.
// Starting a running clock is a no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	if !c.running {
		c.running = true
		c.last = c.now()
	}
	c.mu.Unlock()
}

// Stop halts measuring. Elapsed is preserved; Delta returns zero while
// stopped. Stopping a stopped clock is a no-op.
func (c *Clock) Stop() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

// Running reports whether the clock is measuring.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Delta returns the time since the previous Delta call and advances the
// clock. Returns zero when stopped.
func (c *Clock) Delta() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return 0
	}
	t := c.now()
	dt := t.Sub(c.last)
	c.last = t
	c.elapsed += dt
	return dt
}

// Elapsed returns the total running time accumulated by Delta calls.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}
