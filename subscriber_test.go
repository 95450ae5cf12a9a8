package stage

import (
	"testing"
	"time"
)

// runTick executes the current tick sequence the way the loop does:
// over a snapshot taken at tick start.
func runTick(st *Store) {
	snap := st.Get()
	for _, fn := range st.Subscribers() {
		fn(snap, 0)
	}
}

func TestSubscriberPriorityOrdering(t *testing.T) {
	st := New()
	defer st.Close()

	var order []int
	for _, p := range []int{5, 1, 3} {
		p := p
		st.Subscribe(func(State, time.Duration) {
			order = append(order, p)
		}, p)
	}

	runTick(st)

	want := []int{1, 3, 5}
	if len(order) != len(want) {
		t.Fatalf("ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ran %v, want %v", order, want)
		}
	}
}

func TestSubscriberEqualPriorityKeepsRegistrationOrder(t *testing.T) {
	st := New()
	defer st.Close()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		st.Subscribe(func(State, time.Duration) {
			order = append(order, name)
		}, 0)
	}

	runTick(st)

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ran %v, want %v", order, want)
		}
	}
}

func TestManualCountTracksNonzeroPriorities(t *testing.T) {
	st := New()
	defer st.Close()

	noop := func(State, time.Duration) {}

	u1 := st.Subscribe(noop, 1)
	u2 := st.Subscribe(noop, 2)
	u3 := st.Subscribe(noop, 0)  // zero priority: not manual
	u4 := st.Subscribe(noop, -1) // negative priority still counts

	if got := st.Get().ManualCount; got != 3 {
		t.Fatalf("ManualCount = %d, want 3", got)
	}

	u1()
	u4()
	if got := st.Get().ManualCount; got != 1 {
		t.Fatalf("ManualCount after two removals = %d, want 1", got)
	}

	u2()
	u3()
	if got := st.Get().ManualCount; got != 0 {
		t.Fatalf("ManualCount after all removals = %d, want 0", got)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	st := New()
	defer st.Close()

	noop := func(State, time.Duration) {}
	unsub := st.Subscribe(noop, 5)
	st.Subscribe(noop, 5)

	unsub()
	unsub() // second call must not double-decrement

	if got := st.Get().ManualCount; got != 1 {
		t.Errorf("ManualCount = %d, want 1", got)
	}
	if got := len(st.Subscribers()); got != 1 {
		t.Errorf("registry holds %d entries, want 1", got)
	}
}

func TestUnsubscribeAfterCloseIsNoop(t *testing.T) {
	st := New()
	unsub := st.Subscribe(func(State, time.Duration) {}, 1)
	st.Close()

	unsub() // must not panic or fault
	if got := st.Get().ManualCount; got != 0 {
		t.Errorf("ManualCount = %d, want 0 after Close", got)
	}
}

func TestSubscribeAfterCloseIsNoop(t *testing.T) {
	st := New()
	st.Close()

	unsub := st.Subscribe(func(State, time.Duration) {}, 1)
	unsub()
	if got := len(st.Subscribers()); got != 0 {
		t.Errorf("registry holds %d entries after Close, want 0", got)
	}
}

func TestUnsubscribeDuringTickDoesNotSkip(t *testing.T) {
	st := New()
	defer st.Close()

	var ran []string
	var unsubB func()
	st.Subscribe(func(State, time.Duration) {
		ran = append(ran, "a")
		unsubB() // removes the next entry mid-tick
	}, 0)
	unsubB = st.Subscribe(func(State, time.Duration) {
		ran = append(ran, "b")
	}, 0)
	st.Subscribe(func(State, time.Duration) {
		ran = append(ran, "c")
	}, 0)

	// The tick iterates the snapshot taken at tick start, so b still runs
	// this tick and disappears from the next.
	runTick(st)
	if len(ran) != 3 {
		t.Fatalf("first tick ran %v, want a b c", ran)
	}

	ran = nil
	runTick(st)
	if len(ran) != 2 || ran[0] != "a" || ran[1] != "c" {
		t.Fatalf("second tick ran %v, want a c", ran)
	}
}

func TestNilSubscriberIgnored(t *testing.T) {
	st := New()
	defer st.Close()
	unsub := st.Subscribe(nil, 3)
	unsub()
	if got := st.Get().ManualCount; got != 0 {
		t.Errorf("ManualCount = %d, want 0", got)
	}
}

func BenchmarkSubscribeUnsubscribe(b *testing.B) {
	st := New()
	defer st.Close()
	noop := func(State, time.Duration) {}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Subscribe(noop, i%7)()
	}
}

func BenchmarkTickSnapshot(b *testing.B) {
	st := New()
	defer st.Close()
	noop := func(State, time.Duration) {}
	for i := 0; i < 64; i++ {
		st.Subscribe(noop, i%7)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Subscribers()
	}
}
