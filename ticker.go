package stage

import (
	"context"
	"time"
)

// FrameSource paces frames for a Loop. Hosts with a native vsync signal
// implement this over their frame callback; headless use gets
// IntervalSource.
type FrameSource interface {
	// Run invokes frame once per pacing tick until ctx is cancelled,
	// then returns ctx's error.
	Run(ctx context.Context, frame func(now time.Time)) error
}

// IntervalSource paces frames on a fixed wall-clock interval with drift
// correction: each deadline is derived from the previous one, not from
// when the frame finished, so a slow frame does not permanently shift the
// schedule. When the loop falls more than one interval behind, the
// schedule resynchronizes to now instead of firing a burst of catch-up
// frames.
type IntervalSource struct {
	// Interval between frames. Zero or negative means 60Hz.
	Interval time.Duration
}

// Run implements FrameSource.
func (src *IntervalSource) Run(ctx context.Context, frame func(now time.Time)) error {
	interval := src.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}

	next := time.Now().Add(interval)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-timer.C:
			frame(now)
			next = next.Add(interval)
			wait := time.Until(next)
			if wait < 0 {
				next = time.Now().Add(interval)
				wait = interval
			}
			timer.Reset(wait)
		}
	}
}
