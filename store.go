package stage

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/stage/camera"
	"github.com/gogpu/stage/raycast"
	"github.com/gogpu/stage/scene"
)

// Renderer is invoked by the loop once per automatic frame, after all
// frame subscribers have run. Implementations should consult the
// Performance slice of the state before expensive work.
//
// render.Renderer aliases this interface; implementations live there.
type Renderer interface {
	RenderFrame(s *Store, dt time.Duration) error
}

// maxPendingFrames caps queued Invalidate requests on a demand-mode store.
const maxPendingFrames = 60

// Store is the render-state aggregate for one mounted root. It owns the
// camera, scene handle, raycaster, clock, size, derived viewport, adaptive
// quality, and the frame-subscriber registry.
//
// Every mutation publishes synchronously: reads issued after a mutation
// returns observe the complete transition (a SetSize is never visible
// without its recomputed viewport). Observers registered through Observe
// are notified outside the store lock, so a callback may call back into
// the store; deliveries are serialized per store (see dispatch), so at
// most one goroutine runs callbacks at a time even when the recovery
// timer commits from its own goroutine.
type Store struct {
	mu     sync.Mutex
	state  State
	closed bool

	observers []*observer
	obsSeq    uint64

	subs   []subscriberEntry
	subSeq uint64

	renderer Renderer
	pending  int // queued demand-mode frames

	prSource       func() float64
	schedule       scheduleFunc
	cancelRecovery func() bool
	perfGen        uint64

	notifyMu    sync.Mutex
	notifying   bool
	notifyQueue []notification
}

// notification is one committed transition awaiting observer delivery.
type notification struct {
	snap State
	obs  []*observer
}

// New mounts a store. The camera is a fresh default perspective camera
// (orthographic with WithOrthographic) with the camera config overlaid,
// unless WithCamera injects one. The viewport's size-derived fields stay
// NaN until a nonzero size arrives via WithSize or SetSize.
func New(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var cam camera.Camera
	switch {
	case o.cameraOverride != nil:
		cam = o.cameraOverride
	case o.orthographic:
		oc := camera.NewOrthographic()
		o.cameraCfg.ApplyOrthographic(oc)
		cam = oc
	default:
		pc := camera.NewPerspective()
		o.cameraCfg.ApplyPerspective(pc)
		cam = pc
	}

	pr := o.pixelRatio
	if o.hasPRRange {
		pr = clampPixelRatio(o.prRange[0], o.prRange[1], o.pixelRatioSource())
	}

	clock := NewClock(o.now)
	clock.Start()

	nan := math.NaN()
	s := &Store{
		prSource: o.pixelRatioSource,
		schedule: o.schedule,
		renderer: o.renderer,
		state: State{
			Camera:    cam,
			Scene:     scene.NewNode("root"),
			Raycaster: raycast.New(o.raycasterCfg),
			Clock:     clock,
			Viewport: Viewport{
				InitialPixelRatio: pr,
				PixelRatio:        pr,
				Width:             nan,
				Height:            nan,
				Aspect:            nan,
				Factor:            nan,
			},
			Performance:  o.perf,
			VR:           o.vr,
			Linear:       o.linear,
			Orthographic: o.orthographic,
			Frameloop:    o.frameloop,
			UpdateCamera: o.updateCamera,
		},
	}
	s.installResizeReactor()
	if o.hasSize {
		s.SetSize(o.width, o.height)
	}
	Logger().Debug("stage: store mounted",
		"orthographic", o.orthographic, "frameloop", o.frameloop, "pixelRatio", pr)
	return s
}

// Get returns a snapshot of the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// commit applies mutate under the lock and notifies observers with the
// resulting snapshot. Notification runs outside the lock so callbacks can
// call back into the store. A closed store ignores mutations.
func (s *Store) commit(mutate func(*State)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	mutate(&s.state)
	snap := s.state
	obs := slices.Clone(s.observers)
	s.mu.Unlock()
	s.dispatch(snap, obs)
}

// dispatch delivers a committed snapshot to observers. Deliveries are
// serialized per store: at most one goroutine runs observer callbacks at a
// time, so the per-observer last-seen values and anything a callback
// touches (the resize reactor's camera writes) never race with the
// governor's timer goroutine. A dispatch arriving while another is in
// flight, whether a nested commit from a callback or a concurrent commit
// from the timer, is queued and drained by the in-flight dispatcher in
// commit order.
func (s *Store) dispatch(snap State, obs []*observer) {
	s.notifyMu.Lock()
	if s.notifying {
		s.notifyQueue = append(s.notifyQueue, notification{snap: snap, obs: obs})
		s.notifyMu.Unlock()
		return
	}
	s.notifying = true
	s.notifyMu.Unlock()

	for {
		for _, o := range obs {
			o.notify(snap)
		}
		s.notifyMu.Lock()
		if len(s.notifyQueue) == 0 {
			s.notifying = false
			s.notifyMu.Unlock()
			return
		}
		next := s.notifyQueue[0]
		s.notifyQueue = s.notifyQueue[1:]
		s.notifyMu.Unlock()
		snap, obs = next.snap, next.obs
	}
}

// SetSize replaces the logical canvas size and recomputes the derived
// viewport in the same transition: no observer sees the new size paired
// with the old viewport.
func (s *Store) SetSize(width, height float64) {
	s.commit(func(st *State) {
		st.Size = Size{Width: width, Height: height}
		st.Viewport = recomputeViewport(st)
	})
}

// SetCamera atomically replaces the active camera. The viewport and camera
// projection are not recomputed here; callers that replace the camera
// without a subsequent size or pixel-ratio change call RefreshViewport.
func (s *Store) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.commit(func(st *State) {
		st.Camera = cam
	})
}

// SetPixelRatio replaces the viewport pixel ratio with a literal scalar.
// Only the pixel-ratio slice changes; the resize reactor picks it up.
func (s *Store) SetPixelRatio(ratio float64) {
	s.commit(func(st *State) {
		st.Viewport.PixelRatio = ratio
	})
}

// SetPixelRatioRange clamps the environment's current pixel ratio into
// [lo, hi] and stores the result. The environment ratio comes from the
// source configured with WithPixelRatioSource (default 1).
func (s *Store) SetPixelRatioRange(lo, hi float64) {
	ratio := clampPixelRatio(lo, hi, s.prSource())
	s.commit(func(st *State) {
		st.Viewport.PixelRatio = ratio
	})
}

func clampPixelRatio(lo, hi, env float64) float64 {
	return math.Min(math.Max(env, lo), hi)
}

// RefreshViewport recomputes the derived viewport from the current camera
// and size, then reapplies the camera projection when UpdateCamera is
// enabled. Intended for callers that replaced the camera without also
// changing the size.
func (s *Store) RefreshViewport() {
	s.commit(func(st *State) {
		st.Viewport = recomputeViewport(st)
	})
	s.applyCameraProjection()
}

// recomputeViewport rebuilds the size-derived viewport fields, preserving
// the pixel-ratio slice. Called under the store lock.
func recomputeViewport(st *State) Viewport {
	g := ComputeViewport(st.Camera, mgl32.Vec3{}, st.Size)
	v := st.Viewport
	v.Width = g.Width
	v.Height = g.Height
	v.Factor = g.Factor
	v.Distance = g.Distance
	v.Aspect = g.Aspect
	return v
}

// SetFrameloop toggles automatic frame advancement. With the frameloop off
// the store only advances when Invalidate queued a frame.
func (s *Store) SetFrameloop(on bool) {
	s.commit(func(st *State) {
		st.Frameloop = on
	})
}

// Invalidate queues one frame on a demand-mode store. Requests beyond
// maxPendingFrames are dropped. On a store with the frameloop running this
// is a no-op.
func (s *Store) Invalidate() {
	s.mu.Lock()
	if !s.closed && s.pending < maxPendingFrames {
		s.pending++
	}
	s.mu.Unlock()
}

// SetRenderer installs the renderer the loop invokes on automatic frames.
// Pass nil to detach.
func (s *Store) SetRenderer(r Renderer) {
	s.mu.Lock()
	s.renderer = r
	s.mu.Unlock()
}

// Close unmounts the store: the pending recovery task is cancelled, all
// subscribers and observers are dropped, and the clock stops. Close is
// idempotent. Unsubscribe handles held by callers stay safe to invoke.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.cancelRecovery != nil {
		s.cancelRecovery()
		s.cancelRecovery = nil
	}
	s.subs = nil
	s.observers = nil
	s.state.ManualCount = 0
	s.state.Clock.Stop()
	s.mu.Unlock()
	Logger().Debug("stage: store unmounted")
	return nil
}

// takeFrame reports whether the loop should advance this store now,
// consuming one queued demand frame when the frameloop is off.
func (s *Store) takeFrame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if s.state.Frameloop {
		return true
	}
	if s.pending > 0 {
		s.pending--
		return true
	}
	return false
}

// beginFrame advances the clock and frame counter, snapshots the tick
// inputs, and notifies observers of the transition.
func (s *Store) beginFrame() (snap State, subs []FrameCallback, dt time.Duration, r Renderer) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return State{}, nil, 0, nil
	}
	dt = s.state.Clock.Delta()
	s.state.FrameCount++
	snap = s.state
	subs = make([]FrameCallback, len(s.subs))
	for i, e := range s.subs {
		subs[i] = e.fn
	}
	r = s.renderer
	obs := slices.Clone(s.observers)
	s.mu.Unlock()
	s.dispatch(snap, obs)
	return snap, subs, dt, r
}
