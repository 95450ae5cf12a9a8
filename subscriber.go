package stage

import (
	"slices"
	"sort"
	"time"
)

// FrameCallback runs once per render tick with the frame's state snapshot
// and the clock delta since the previous tick.
type FrameCallback func(s State, dt time.Duration)

// subscriberEntry pairs a callback with its scheduling priority. seq is
// the insertion sequence number; it breaks priority ties so registration
// order is preserved.
type subscriberEntry struct {
	fn       FrameCallback
	priority int
	seq      uint64
}

// Subscribe registers fn to run once per tick. Callbacks execute in
// ascending priority order; equal priorities run in registration order.
//
// A nonzero priority marks the subscriber as a manual renderer: while any
// such subscriber is registered the loop suspends automatic rendering
// (ManualCount tracks them).
//
// The returned unsubscribe handle removes the entry. It is idempotent:
// the second call is a no-op and never double-decrements ManualCount.
// It remains safe after the store has been closed.
func (s *Store) Subscribe(fn FrameCallback, priority int) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.subSeq++
	seq := s.subSeq
	// Entries are kept sorted; a new entry goes after every entry with the
	// same priority, which preserves registration order on ties.
	i := sort.Search(len(s.subs), func(i int) bool {
		return s.subs[i].priority > priority
	})
	s.subs = slices.Insert(s.subs, i, subscriberEntry{fn: fn, priority: priority, seq: seq})

	var snap State
	var obs []*observer
	changed := priority != 0
	if changed {
		s.state.ManualCount++
		snap = s.state
		obs = slices.Clone(s.observers)
	}
	s.mu.Unlock()

	if changed {
		s.dispatch(snap, obs)
	}
	return func() { s.unsubscribe(seq) }
}

func (s *Store) unsubscribe(seq uint64) {
	s.mu.Lock()
	i := slices.IndexFunc(s.subs, func(e subscriberEntry) bool { return e.seq == seq })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	priority := s.subs[i].priority
	s.subs = slices.Delete(s.subs, i, i+1)

	var snap State
	var obs []*observer
	changed := priority != 0
	if changed {
		s.state.ManualCount--
		snap = s.state
		obs = slices.Clone(s.observers)
	}
	s.mu.Unlock()

	if changed {
		s.dispatch(snap, obs)
	}
}

// Subscribers returns the tick sequence: a snapshot of the registered
// callbacks in ascending priority order. The loop takes this snapshot at
// tick start, so a callback unsubscribing itself or a neighbor mid-tick
// neither skips nor double-invokes entries of the current tick.
func (s *Store) Subscribers() []FrameCallback {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FrameCallback, len(s.subs))
	for i, e := range s.subs {
		out[i] = e.fn
	}
	return out
}
