package stage

import (
	"time"

	"github.com/gogpu/stage/camera"
	"github.com/gogpu/stage/raycast"
	"github.com/gogpu/stage/scene"
)

// Size is the logical canvas size in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Viewport is the derived geometric description of what the active camera
// sees at the current canvas size. All fields except PixelRatio and
// InitialPixelRatio are recomputed whenever the size changes; Aspect and
// Factor are NaN until a nonzero size has been set.
type Viewport struct {
	// InitialPixelRatio is the ratio resolved at store construction.
	InitialPixelRatio float64

	// PixelRatio is the last value passed through the clamping rule.
	PixelRatio float64

	// Width and Height are the visible extent in world units.
	Width  float64
	Height float64

	// Aspect is canvas width over height.
	Aspect float64

	// Distance is from the camera to the viewport target point.
	Distance float64

	// Factor converts world units to canvas pixels (1 for orthographic).
	Factor float64
}

// Performance is the adaptive-quality slice of the state. Current moves
// between Min and Max: Regress drops it to Min and schedules recovery to
// Max after Debounce. Renderers consult Current before expensive work.
type Performance struct {
	Current  float64
	Min      float64
	Max      float64
	Debounce time.Duration
}

// State is the snapshot value returned by Store.Get. Value fields (Size,
// Viewport, Performance, counters, flags) are copies and safe to retain;
// reference fields (Camera, Scene, Raycaster, Clock) are live handles
// shared with the store.
type State struct {
	// Camera is the single active camera. Replaced wholesale by SetCamera.
	Camera camera.Camera

	// Scene is the root node of the mounted scene graph.
	Scene *scene.Node

	// Raycaster performs pointer picking against Camera.
	Raycaster *raycast.Raycaster

	// Clock is the frame clock threaded through to subscribers.
	Clock *Clock

	Size        Size
	Viewport    Viewport
	Performance Performance

	// Construction flags (see the corresponding options).
	VR           bool
	Linear       bool
	Orthographic bool
	Frameloop    bool
	UpdateCamera bool

	// ManualCount is the number of registered frame subscribers with
	// nonzero priority. While positive, automatic rendering is suspended
	// and those subscribers own presentation.
	ManualCount int

	// FrameCount increments once per advanced frame.
	FrameCount uint64

	// Captured is the pointer currently holding capture, if any.
	Captured *Pointer
}
