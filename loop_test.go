package stage

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingRenderer struct {
	frames int
	err    error
}

func (r *countingRenderer) RenderFrame(s *Store, dt time.Duration) error {
	r.frames++
	return r.err
}

func TestLoopAdvancesFrameloopStore(t *testing.T) {
	st := New()
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	now := time.Now()
	for i := 0; i < 3; i++ {
		l.Step(now)
	}
	if got := st.Get().FrameCount; got != 3 {
		t.Errorf("FrameCount = %d, want 3", got)
	}
}

func TestLoopDemandModeAdvancesOnlyOnInvalidate(t *testing.T) {
	st := New(WithFrameloop(false))
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	now := time.Now()
	l.Step(now)
	l.Step(now)
	if got := st.Get().FrameCount; got != 0 {
		t.Fatalf("FrameCount = %d, want 0 without Invalidate", got)
	}

	st.Invalidate()
	st.Invalidate()
	l.Step(now)
	l.Step(now)
	l.Step(now)
	if got := st.Get().FrameCount; got != 2 {
		t.Errorf("FrameCount = %d, want exactly one frame per Invalidate", got)
	}
}

func TestInvalidateCapped(t *testing.T) {
	st := New(WithFrameloop(false))
	defer st.Close()

	for i := 0; i < 1000; i++ {
		st.Invalidate()
	}

	l := NewLoop()
	defer l.Attach(st)()
	now := time.Now()
	for i := 0; i < 1000; i++ {
		l.Step(now)
	}
	if got := st.Get().FrameCount; got != maxPendingFrames {
		t.Errorf("FrameCount = %d, want cap %d", got, maxPendingFrames)
	}
}

func TestLoopEffectOrdering(t *testing.T) {
	st := New()
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	var order []string
	removeBefore := l.OnBefore(func(time.Time) { order = append(order, "before") })
	defer removeBefore()
	removeAfter := l.OnAfter(func(time.Time) { order = append(order, "after") })
	defer removeAfter()
	st.Subscribe(func(State, time.Duration) { order = append(order, "frame") }, 0)

	l.Step(time.Now())

	want := []string{"before", "frame", "after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestLoopIdleFiresOncePerTransition(t *testing.T) {
	st := New(WithFrameloop(false))
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	idles := 0
	remove := l.OnIdle(func(time.Time) { idles++ })
	defer remove()

	now := time.Now()
	st.Invalidate()
	l.Step(now) // active
	l.Step(now) // drained: idle fires
	l.Step(now) // still idle: no refire
	if idles != 1 {
		t.Fatalf("idle fired %d times, want 1", idles)
	}

	st.Invalidate()
	l.Step(now)
	l.Step(now)
	if idles != 2 {
		t.Errorf("idle fired %d times after second drain, want 2", idles)
	}
}

func TestLoopRunsRendererOnAutomaticFrames(t *testing.T) {
	r := &countingRenderer{}
	st := New(WithRenderer(r))
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	l.Step(time.Now())
	l.Step(time.Now())
	if r.frames != 2 {
		t.Errorf("renderer ran %d times, want 2", r.frames)
	}
}

func TestManualSubscriberSuspendsRenderer(t *testing.T) {
	r := &countingRenderer{}
	st := New(WithRenderer(r))
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	unsub := st.Subscribe(func(State, time.Duration) {}, 1)
	l.Step(time.Now())
	if r.frames != 0 {
		t.Fatalf("renderer ran %d times while a manual subscriber exists", r.frames)
	}

	unsub()
	l.Step(time.Now())
	if r.frames != 1 {
		t.Errorf("renderer ran %d times after manual subscriber left, want 1", r.frames)
	}
}

func TestLoopRendererErrorDoesNotStopFrames(t *testing.T) {
	r := &countingRenderer{err: errors.New("device lost")}
	st := New(WithRenderer(r))
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	l.Step(time.Now())
	l.Step(time.Now())
	if r.frames != 2 {
		t.Errorf("renderer ran %d times, want 2 despite errors", r.frames)
	}
}

func TestLoopDetachStopsAdvancing(t *testing.T) {
	st := New()
	defer st.Close()

	l := NewLoop()
	detach := l.Attach(st)

	l.Step(time.Now())
	detach()
	detach() // idempotent
	l.Step(time.Now())

	if got := st.Get().FrameCount; got != 1 {
		t.Errorf("FrameCount = %d, want 1 after detach", got)
	}
}

func TestLoopRunStopsOnContextCancel(t *testing.T) {
	st := New()
	defer st.Close()

	l := NewLoop(WithFrameSource(&IntervalSource{Interval: time.Millisecond}))
	defer l.Attach(st)()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run returned %v, want deadline exceeded", err)
	}
	if st.Get().FrameCount == 0 {
		t.Error("no frames advanced during Run")
	}
}

func TestLoopSubscriberReceivesDelta(t *testing.T) {
	ft := newFakeTime()
	st := New(WithTimeSource(ft.now))
	defer st.Close()

	l := NewLoop()
	defer l.Attach(st)()

	var deltas []time.Duration
	st.Subscribe(func(_ State, dt time.Duration) { deltas = append(deltas, dt) }, 0)

	l.Step(ft.now())
	ft.advance(16 * time.Millisecond)
	l.Step(ft.now())

	if len(deltas) != 2 || deltas[0] != 0 || deltas[1] != 16*time.Millisecond {
		t.Errorf("deltas = %v, want [0 16ms]", deltas)
	}
}
