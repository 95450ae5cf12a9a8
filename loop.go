package stage

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Loop drives frames for one or more stores. Per frame it runs the
// before-effects, advances every store due a frame (frameloop stores every
// frame, demand stores once per queued Invalidate), runs the
// after-effects, and fires the idle callbacks once when every attached
// store has gone quiet.
//
// Within a store's advance, frame subscribers run in ascending priority
// order against a snapshot taken at tick start, then the store's renderer
// runs, unless a manual subscriber (nonzero priority) is registered, in
// which case automatic rendering is suspended.
type Loop struct {
	mu     sync.Mutex
	stores []*Store
	seq    uint64

	before []loopEffect
	after  []loopEffect
	idle   []loopEffect

	wasActive bool
	source    FrameSource
}

type loopEffect struct {
	id uint64
	fn func(now time.Time)
}

// LoopOption configures a Loop during creation.
type LoopOption func(*Loop)

// WithFrameSource replaces the loop's frame pacing (default: a 60Hz
// IntervalSource). Hosts with vsync implement FrameSource over their
// native frame callback.
func WithFrameSource(src FrameSource) LoopOption {
	return func(l *Loop) {
		if src != nil {
			l.source = src
		}
	}
}

// NewLoop creates a loop. Attach stores, then call Run or drive Step
// manually.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		source: &IntervalSource{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Attach adds a store to the loop and returns its detach. Detach is
// idempotent; a closed store may stay attached and simply never advances.
func (l *Loop) Attach(s *Store) (detach func()) {
	l.mu.Lock()
	l.stores = append(l.stores, s)
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		if i := slices.Index(l.stores, s); i >= 0 {
			l.stores = slices.Delete(l.stores, i, i+1)
		}
		l.mu.Unlock()
	}
}

// OnBefore registers fn to run at the start of every frame, before any
// store advances. Returns an idempotent remove handle.
func (l *Loop) OnBefore(fn func(now time.Time)) (remove func()) {
	return l.addEffect(&l.before, fn)
}

// OnAfter registers fn to run at the end of every frame, after all stores
// advanced. Returns an idempotent remove handle.
func (l *Loop) OnAfter(fn func(now time.Time)) (remove func()) {
	return l.addEffect(&l.after, fn)
}

// OnIdle registers fn to run once each time the loop transitions from
// advancing at least one store to advancing none (all demand stores
// drained, no frameloop store attached). Returns an idempotent remove
// handle.
func (l *Loop) OnIdle(fn func(now time.Time)) (remove func()) {
	return l.addEffect(&l.idle, fn)
}

func (l *Loop) addEffect(list *[]loopEffect, fn func(time.Time)) func() {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	l.seq++
	id := l.seq
	*list = append(*list, loopEffect{id: id, fn: fn})
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		*list = slices.DeleteFunc(*list, func(e loopEffect) bool { return e.id == id })
		l.mu.Unlock()
	}
}

// Step advances one frame at the given time. Exposed so hosts and tests
// can drive the loop without a FrameSource.
func (l *Loop) Step(now time.Time) {
	l.mu.Lock()
	stores := slices.Clone(l.stores)
	before := slices.Clone(l.before)
	after := slices.Clone(l.after)
	l.mu.Unlock()

	for _, e := range before {
		e.fn(now)
	}

	active := false
	for _, s := range stores {
		if !s.takeFrame() {
			continue
		}
		active = true
		l.advance(s)
	}

	for _, e := range after {
		e.fn(now)
	}

	l.mu.Lock()
	fireIdle := l.wasActive && !active
	l.wasActive = active
	idle := slices.Clone(l.idle)
	l.mu.Unlock()

	if fireIdle {
		for _, e := range idle {
			e.fn(now)
		}
	}
}

// advance runs one store frame: subscribers in priority order over the
// tick-start snapshot, then the automatic renderer unless suspended by a
// manual subscriber.
func (l *Loop) advance(s *Store) {
	snap, subs, dt, r := s.beginFrame()
	for _, fn := range subs {
		fn(snap, dt)
	}
	if r != nil && snap.ManualCount == 0 {
		if err := r.RenderFrame(s, dt); err != nil {
			Logger().Warn("stage: renderer failed", "frame", snap.FrameCount, "error", err)
		}
	}
}

// Run drives Step from the loop's FrameSource until ctx is cancelled,
// then returns ctx's error.
func (l *Loop) Run(ctx context.Context) error {
	return l.source.Run(ctx, l.Step)
}
