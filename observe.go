package stage

import (
	"reflect"
	"slices"
)

// observer is one reactive subscription. notify receives every committed
// snapshot and decides internally whether the selected slice changed.
type observer struct {
	id     uint64
	notify func(State)
}

// Observe registers a reactive subscription on a slice of the store's
// state. selector extracts the slice from a snapshot; fn fires whenever
// two consecutive selections differ under equals. A nil equals falls back
// to reflect.DeepEqual.
//
// The initial selection is taken at registration and does not fire fn.
// Callbacks run after the transition commits, outside the store lock, so
// fn may call back into the store. Deliveries are serialized: callbacks
// for transitions committed from different goroutines never overlap, and
// a transition committed while a delivery is in flight is queued and
// delivered by the in-flight dispatcher.
//
// The returned cancel is idempotent and safe after Close.
//
// Observe is a package-level function rather than a method because methods
// cannot introduce type parameters.
func Observe[T any](s *Store, selector func(State) T, equals func(a, b T) bool, fn func(T)) (cancel func()) {
	if equals == nil {
		equals = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.obsSeq++
	id := s.obsSeq
	last := selector(s.state)
	o := &observer{
		id: id,
		notify: func(st State) {
			v := selector(st)
			if equals(v, last) {
				return
			}
			last = v
			fn(v)
		},
	}
	s.observers = append(s.observers, o)
	s.mu.Unlock()

	return func() { s.removeObserver(id) }
}

func (s *Store) removeObserver(id uint64) {
	s.mu.Lock()
	s.observers = slices.DeleteFunc(s.observers, func(o *observer) bool {
		return o.id == id
	})
	s.mu.Unlock()
}
