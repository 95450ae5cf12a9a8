package stage

import (
	"time"

	"github.com/gogpu/stage/camera"
	"github.com/gogpu/stage/raycast"
)

// Option configures a Store during creation.
//
// Example:
//
//	// Defaults: perspective camera, frameloop on, pixel ratio 1.
//	st := stage.New()
//
//	// Orthographic, demand-driven frames, clamped device pixel ratio.
//	st := stage.New(
//	    stage.WithOrthographic(),
//	    stage.WithFrameloop(false),
//	    stage.WithPixelRatioRange(1, 2),
//	)
type Option func(*options)

// options holds optional configuration for Store creation.
type options struct {
	vr           bool
	linear       bool
	orthographic bool
	frameloop    bool
	updateCamera bool

	pixelRatio float64
	prRange    [2]float64
	hasPRRange bool

	perf Performance

	cameraCfg      camera.Config
	cameraOverride camera.Camera
	raycasterCfg   raycast.Config

	width, height float64
	hasSize       bool

	renderer Renderer

	pixelRatioSource func() float64
	schedule         scheduleFunc
	now              func() time.Time
}

// defaultOptions returns the default store options.
func defaultOptions() options {
	return options{
		frameloop:    true,
		updateCamera: true,
		pixelRatio:   1,
		perf: Performance{
			Current:  1,
			Min:      0.5,
			Max:      1,
			Debounce: 200 * time.Millisecond,
		},
		pixelRatioSource: func() float64 { return 1 },
		schedule:         defaultSchedule,
		now:              time.Now,
	}
}

// WithVR marks the store as driving a VR presentation. The flag is carried
// in the state for renderers; the store itself treats it as opaque.
func WithVR() Option {
	return func(o *options) { o.vr = true }
}

// WithLinear requests a linear (non-sRGB-encoded) color pipeline.
func WithLinear() Option {
	return func(o *options) { o.linear = true }
}

// WithOrthographic constructs the default camera as orthographic instead
// of perspective. Ignored when WithCamera injects a camera.
func WithOrthographic() Option {
	return func(o *options) { o.orthographic = true }
}

// WithFrameloop toggles automatic frame advancement (default true).
// With false the store is demand-driven: frames run only after Invalidate.
func WithFrameloop(on bool) Option {
	return func(o *options) { o.frameloop = on }
}

// WithUpdateCamera toggles the resize reactor's camera mutation
// (default true). With false, size and pixel-ratio changes still recompute
// the viewport, but the caller owns camera projection entirely.
func WithUpdateCamera(on bool) Option {
	return func(o *options) { o.updateCamera = on }
}

// WithPixelRatio sets the viewport pixel ratio to a literal scalar
// (default 1).
func WithPixelRatio(ratio float64) Option {
	return func(o *options) {
		o.pixelRatio = ratio
		o.hasPRRange = false
	}
}

// WithPixelRatioRange derives the initial pixel ratio by clamping the
// environment's ratio into [lo, hi].
func WithPixelRatioRange(lo, hi float64) Option {
	return func(o *options) {
		o.prRange = [2]float64{lo, hi}
		o.hasPRRange = true
	}
}

// WithPerformance overrides the adaptive-quality parameters. Zero fields
// keep their defaults (min 0.5, max 1, debounce 200ms). Current starts
// at max.
func WithPerformance(min, max float64, debounce time.Duration) Option {
	return func(o *options) {
		if min != 0 {
			o.perf.Min = min
		}
		if max != 0 {
			o.perf.Max = max
		}
		if debounce != 0 {
			o.perf.Debounce = debounce
		}
		o.perf.Current = o.perf.Max
	}
}

// WithCameraConfig overlays cfg onto the freshly constructed default
// camera. Ignored when WithCamera injects a camera.
func WithCameraConfig(cfg camera.Config) Option {
	return func(o *options) { o.cameraCfg = cfg }
}

// WithCamera injects an existing camera instead of constructing a default
// one. WithOrthographic and WithCameraConfig are ignored in that case.
func WithCamera(cam camera.Camera) Option {
	return func(o *options) { o.cameraOverride = cam }
}

// WithRaycasterConfig overlays cfg onto the freshly constructed default
// raycaster.
func WithRaycasterConfig(cfg raycast.Config) Option {
	return func(o *options) { o.raycasterCfg = cfg }
}

// WithSize sets the initial canvas size, as if SetSize ran immediately
// after construction. Without it the viewport's size-derived fields stay
// NaN until the first SetSize.
func WithSize(width, height float64) Option {
	return func(o *options) {
		o.width, o.height = width, height
		o.hasSize = true
	}
}

// WithRenderer installs the renderer invoked on automatic frames.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithPixelRatioSource sets where SetPixelRatioRange reads the
// environment's device pixel ratio (default: constant 1). Hosts wire this
// to their window system.
func WithPixelRatioSource(src func() float64) Option {
	return func(o *options) {
		if src != nil {
			o.pixelRatioSource = src
		}
	}
}

// WithScheduler replaces the one-shot task scheduler used by the
// performance governor (default: time.AfterFunc). Tests inject a manual
// scheduler to drive recovery deterministically.
func WithScheduler(schedule func(d time.Duration, fn func()) (cancel func() bool)) Option {
	return func(o *options) {
		if schedule != nil {
			o.schedule = schedule
		}
	}
}

// WithTimeSource replaces the clock's time source (default: time.Now).
func WithTimeSource(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
