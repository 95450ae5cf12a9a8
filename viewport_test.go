package stage

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/stage/camera"
)

func TestComputeViewportOrthographic(t *testing.T) {
	cam := camera.NewOrthographic()
	cam.SetZoom(2)

	g := ComputeViewport(cam, mgl32.Vec3{}, Size{Width: 200, Height: 100})
	if g.Width != 100 || g.Height != 50 {
		t.Errorf("extent = %vx%v, want 100x50", g.Width, g.Height)
	}
	if g.Factor != 1 {
		t.Errorf("Factor = %v, want 1", g.Factor)
	}
	if g.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", g.Aspect)
	}
}

func TestComputeViewportPerspective(t *testing.T) {
	cam := camera.NewPerspective()
	cam.SetFOV(90)
	cam.SetPosition(mgl32.Vec3{0, 0, 1}) // distance 1 from the origin target

	g := ComputeViewport(cam, mgl32.Vec3{}, Size{Width: 100, Height: 100})

	// height = 2*tan(45°)*1 = 2; square canvas gives the same width;
	// factor = 100px / 2 world units = 50.
	if math.Abs(g.Height-2) > 1e-9 {
		t.Errorf("Height = %v, want 2", g.Height)
	}
	if math.Abs(g.Width-2) > 1e-9 {
		t.Errorf("Width = %v, want 2", g.Width)
	}
	if math.Abs(g.Factor-50) > 1e-7 {
		t.Errorf("Factor = %v, want 50", g.Factor)
	}
	if g.Distance != 1 {
		t.Errorf("Distance = %v, want 1", g.Distance)
	}
}

func TestComputeViewportAspectExact(t *testing.T) {
	cam := camera.NewPerspective()
	sizes := []Size{
		{800, 600},
		{1920, 1080},
		{100, 100},
		{333, 777},
	}
	for _, size := range sizes {
		g := ComputeViewport(cam, mgl32.Vec3{}, size)
		if g.Aspect != size.Width/size.Height {
			t.Errorf("Aspect for %v = %v, want %v", size, g.Aspect, size.Width/size.Height)
		}
	}
}

func TestComputeViewportZeroSize(t *testing.T) {
	cam := camera.NewPerspective()
	tests := []struct {
		name string
		size Size
	}{
		{"zero", Size{}},
		{"zero height", Size{Width: 100}},
		{"zero width", Size{Height: 100}},
		{"negative", Size{Width: -1, Height: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ComputeViewport(cam, mgl32.Vec3{}, tt.size)
			if !math.IsNaN(g.Aspect) || !math.IsNaN(g.Factor) {
				t.Errorf("Aspect, Factor = %v, %v; want NaN until a nonzero size", g.Aspect, g.Factor)
			}
			if g.Distance != 5 {
				t.Errorf("Distance = %v, want 5 (still defined)", g.Distance)
			}
		})
	}
}

func TestComputeViewportIsPure(t *testing.T) {
	cam := camera.NewPerspective()
	size := Size{Width: 640, Height: 480}
	a := ComputeViewport(cam, mgl32.Vec3{}, size)
	b := ComputeViewport(cam, mgl32.Vec3{}, size)
	if a != b {
		t.Errorf("repeated computation differs: %v vs %v", a, b)
	}
}
