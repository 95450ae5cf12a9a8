package stage

import (
	"slices"
	"time"
)

// scheduleFunc arms a one-shot task after d and returns its cancel.
// cancel reports whether it prevented the task from running, with
// time.Timer.Stop semantics. Injectable for deterministic tests.
type scheduleFunc func(d time.Duration, fn func()) (cancel func() bool)

func defaultSchedule(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// Regress drops the quality scalar to Performance.Min immediately and
// schedules recovery to Performance.Max after Performance.Debounce.
//
// Calling Regress again before recovery re-arms the debounce: the pending
// recovery task is cancelled first, so rapid successive calls produce
// exactly one recovery, timed from the latest call. Regress cannot fail
// and is safe to call at any rate.
func (s *Store) Regress() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.perfGen++
	gen := s.perfGen
	if s.cancelRecovery != nil {
		s.cancelRecovery()
	}

	changed := s.state.Performance.Current != s.state.Performance.Min
	s.state.Performance.Current = s.state.Performance.Min
	s.cancelRecovery = s.schedule(s.state.Performance.Debounce, func() {
		s.recoverPerformance(gen)
	})

	var snap State
	var obs []*observer
	if changed {
		snap = s.state
		obs = slices.Clone(s.observers)
	}
	s.mu.Unlock()

	if changed {
		Logger().Debug("stage: performance regressed",
			"current", snap.Performance.Current, "debounce", snap.Performance.Debounce)
		s.dispatch(snap, obs)
	}
}

// recoverPerformance restores the quality scalar to Max. The generation
// check makes a stale fire (one whose Regress was superseded after the
// timer already went off) a no-op.
func (s *Store) recoverPerformance(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.perfGen {
		s.mu.Unlock()
		return
	}
	s.cancelRecovery = nil
	s.state.Performance.Current = s.state.Performance.Max
	snap := s.state
	obs := slices.Clone(s.observers)
	s.mu.Unlock()

	Logger().Debug("stage: performance recovered", "current", snap.Performance.Current)
	s.dispatch(snap, obs)
}
