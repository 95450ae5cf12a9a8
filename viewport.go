package stage

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/stage/camera"
)

// Geometry is the result of a viewport computation: the world-space extent
// visible at the target distance, plus the scale factor between world units
// and canvas pixels.
type Geometry struct {
	Width    float64
	Height   float64
	Factor   float64
	Distance float64
	Aspect   float64
}

// ComputeViewport derives the visible extent for cam looking at target
// with a canvas of the given size.
//
// For an orthographic camera the extent is the canvas size divided by zoom
// and Factor is 1. For a perspective camera the extent is the frustum
// cross-section at the target distance and Factor converts world units to
// pixels.
//
// ComputeViewport is pure: it reads the camera snapshot and returns a
// value, mutating nothing. A non-positive size yields NaN for every
// size-derived field rather than an error; Distance stays valid.
func ComputeViewport(cam camera.Camera, target mgl32.Vec3, size Size) Geometry {
	g := Geometry{
		Distance: float64(cam.WorldPosition().Sub(target).Len()),
	}
	if size.Width <= 0 || size.Height <= 0 {
		nan := math.NaN()
		g.Width, g.Height, g.Factor, g.Aspect = nan, nan, nan, nan
		return g
	}
	g.Aspect = size.Width / size.Height

	if ortho, ok := cam.(*camera.Orthographic); ok {
		zoom := float64(ortho.Zoom())
		if zoom == 0 {
			zoom = 1
		}
		g.Width = size.Width / zoom
		g.Height = size.Height / zoom
		g.Factor = 1
		return g
	}

	fov := float64(camera.DefaultFOV)
	if persp, ok := cam.(*camera.Perspective); ok {
		fov = float64(persp.FOV())
	}
	fovRad := fov * math.Pi / 180
	g.Height = 2 * math.Tan(fovRad/2) * g.Distance
	g.Width = g.Height * g.Aspect
	g.Factor = size.Width / g.Width
	return g
}
