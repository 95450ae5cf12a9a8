package stage

import (
	"github.com/gogpu/stage/camera"
)

// resizeKey is the slice the resize reactor watches. Comparable, so the
// standing observation uses shallow (==) equality.
type resizeKey struct {
	PixelRatio float64
	Size       Size
}

// installResizeReactor registers the standing observation that keeps the
// camera projection consistent with the canvas: whenever the pixel ratio
// or size changes, the active camera's projection parameters are rewritten
// and its matrices marked dirty. Gated by the UpdateCamera flag: when the
// caller owns projection entirely, the reactor observes but never mutates.
func (s *Store) installResizeReactor() {
	Observe(s,
		func(st State) resizeKey {
			return resizeKey{PixelRatio: st.Viewport.PixelRatio, Size: st.Size}
		},
		func(a, b resizeKey) bool { return a == b },
		func(k resizeKey) {
			if s.applyCameraProjection() {
				Logger().Debug("stage: camera projection updated",
					"width", k.Size.Width, "height", k.Size.Height, "pixelRatio", k.PixelRatio)
			}
		})
}

// applyCameraProjection rewrites the active camera's projection for the
// current size, under the store lock so the write never overlaps a
// viewport recompute reading the same camera. Reports whether a camera
// was mutated.
func (s *Store) applyCameraProjection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.state.UpdateCamera || s.state.Camera == nil {
		return false
	}
	applyProjection(s.state.Camera, s.state.Size)
	return true
}

// applyProjection rewrites the camera's projection parameters for the
// given canvas size: orthographic frustum edges at ±size/2, perspective
// aspect at width/height. Matrices are marked dirty for recomputation
// before the next render.
func applyProjection(cam camera.Camera, size Size) {
	switch c := cam.(type) {
	case *camera.Orthographic:
		hw := float32(size.Width / 2)
		hh := float32(size.Height / 2)
		c.SetFrustum(-hw, hw, hh, -hh)
	case *camera.Perspective:
		if size.Height > 0 {
			c.SetAspect(float32(size.Width / size.Height))
		}
	}
	cam.MarkDirty()
}
