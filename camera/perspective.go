// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default perspective parameters, matching the ecosystem's conventions.
const (
	DefaultFOV  = 75.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Perspective is a pinhole camera with a vertical field of view.
// FOV is stored in degrees and converted to radians when the projection
// matrix is built. Zoom narrows the effective field of view.
type Perspective struct {
	transform

	fov    float32 // vertical FOV, degrees
	aspect float32
	near   float32
	far    float32
	zoom   float32

	proj      mgl32.Mat4
	projDirty bool
}

// NewPerspective returns a perspective camera with fov 75°, near 0.1,
// far 1000, zoom 1, aspect 1, positioned at (0, 0, 5) looking down -Z.
func NewPerspective() *Perspective {
	return &Perspective{
		transform: newTransform(),
		fov:       DefaultFOV,
		aspect:    1,
		near:      DefaultNear,
		far:       DefaultFar,
		zoom:      1,
		projDirty: true,
	}
}

// FOV returns the vertical field of view in degrees.
func (p *Perspective) FOV() float32 { return p.fov }

// SetFOV replaces the vertical field of view (degrees).
func (p *Perspective) SetFOV(deg float32) {
	p.fov = deg
	p.projDirty = true
}

// Aspect returns the width/height aspect ratio.
func (p *Perspective) Aspect() float32 { return p.aspect }

// SetAspect replaces the aspect ratio. The resize reactor calls this on
// every size or pixel-ratio change.
func (p *Perspective) SetAspect(aspect float32) {
	p.aspect = aspect
	p.projDirty = true
}

// Near returns the near clip distance.
func (p *Perspective) Near() float32 { return p.near }

// Far returns the far clip distance.
func (p *Perspective) Far() float32 { return p.far }

// SetClip replaces the near and far clip distances.
func (p *Perspective) SetClip(near, far float32) {
	p.near, p.far = near, far
	p.projDirty = true
}

// Zoom returns the zoom factor.
func (p *Perspective) Zoom() float32 { return p.zoom }

// SetZoom replaces the zoom factor. Zoom z narrows the effective FOV to
// 2·atan(tan(fov/2)/z), so z > 1 magnifies.
func (p *Perspective) SetZoom(zoom float32) {
	p.zoom = zoom
	p.projDirty = true
}

// MarkDirty invalidates both cached matrices.
func (p *Perspective) MarkDirty() {
	p.projDirty = true
	p.viewDirty = true
}

// ProjectionMatrix returns the camera-to-clip transform.
func (p *Perspective) ProjectionMatrix() mgl32.Mat4 {
	if p.projDirty {
		half := math.Tan(float64(mgl32.DegToRad(p.fov)) / 2)
		if p.zoom != 0 {
			half /= float64(p.zoom)
		}
		eff := float32(2 * math.Atan(half))
		p.proj = mgl32.Perspective(eff, p.aspect, p.near, p.far)
		p.projDirty = false
	}
	return p.proj
}
