package stage

import (
	"math"
	"testing"

	"github.com/gogpu/stage/camera"
)

func TestResizeReactorUpdatesPerspectiveAspect(t *testing.T) {
	st := New()
	defer st.Close()

	st.SetSize(400, 200)

	p := st.Get().Camera.(*camera.Perspective)
	if p.Aspect() != 2 {
		t.Errorf("camera aspect = %v, want 2", p.Aspect())
	}

	st.SetSize(300, 300)
	if p.Aspect() != 1 {
		t.Errorf("camera aspect = %v, want 1", p.Aspect())
	}
}

func TestResizeReactorSetsOrthographicFrustum(t *testing.T) {
	st := New(WithOrthographic())
	defer st.Close()

	st.SetSize(200, 100)

	o := st.Get().Camera.(*camera.Orthographic)
	l, r, top, b := o.Frustum()
	if l != -100 || r != 100 || top != 50 || b != -50 {
		t.Errorf("frustum = (%v, %v, %v, %v), want (-100, 100, 50, -50)", l, r, top, b)
	}
}

func TestResizeReactorFiresOnPixelRatioChange(t *testing.T) {
	st := New(WithSize(100, 100))
	defer st.Close()

	// Replace the camera, then change only the pixel ratio: the reactor
	// key includes the ratio, so the new camera gets its aspect.
	cam := camera.NewPerspective()
	cam.SetAspect(99)
	st.SetCamera(cam)

	st.SetPixelRatio(2)
	if cam.Aspect() != 1 {
		t.Errorf("camera aspect = %v, want 1 after pixel-ratio change", cam.Aspect())
	}
}

func TestResizeReactorDisabledByUpdateCamera(t *testing.T) {
	st := New(WithUpdateCamera(false))
	defer st.Close()

	p := st.Get().Camera.(*camera.Perspective)
	before := p.Aspect()

	st.SetSize(500, 100)
	if p.Aspect() != before {
		t.Errorf("camera aspect = %v, want untouched %v", p.Aspect(), before)
	}

	// The viewport itself still recomputes.
	if got := st.Get().Viewport.Aspect; got != 5 {
		t.Errorf("viewport aspect = %v, want 5", got)
	}
}

func TestResizeReactorIgnoresUnchangedKey(t *testing.T) {
	st := New(WithSize(100, 100))
	defer st.Close()

	p := st.Get().Camera.(*camera.Perspective)
	p.SetAspect(42) // out-of-band edit the reactor must not revert

	// Same size and ratio: shallow-equal key, no reaction.
	st.SetSize(100, 100)
	if p.Aspect() != 42 {
		t.Errorf("camera aspect = %v, reactor fired on unchanged key", p.Aspect())
	}
}

func TestRefreshViewportAppliesProjection(t *testing.T) {
	st := New(WithSize(200, 100))
	defer st.Close()

	cam := camera.NewPerspective()
	st.SetCamera(cam)
	if cam.Aspect() == 2 {
		t.Fatal("SetCamera alone must not touch projection")
	}

	st.RefreshViewport()
	if cam.Aspect() != 2 {
		t.Errorf("camera aspect = %v, want 2 after RefreshViewport", cam.Aspect())
	}
	if got := st.Get().Viewport.Distance; math.Abs(got-5) > 1e-9 {
		t.Errorf("viewport distance = %v, want 5", got)
	}
}
