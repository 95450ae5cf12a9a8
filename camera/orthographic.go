// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Orthographic is a parallel-projection camera bounded by four frustum
// edges. Zoom divides the frustum, so z > 1 magnifies. The resize reactor
// keeps the edges at ±size/2 when camera updates are enabled.
type Orthographic struct {
	transform

	left   float32
	right  float32
	top    float32
	bottom float32
	near   float32
	far    float32
	zoom   float32

	proj      mgl32.Mat4
	projDirty bool
}

// NewOrthographic returns an orthographic camera with a unit frustum
// (±1 on both axes), near 0.1, far 1000, zoom 1, positioned at (0, 0, 5)
// looking down -Z. Callers usually follow up with SetFrustum, or let the
// resize reactor derive the frustum from the canvas size.
func NewOrthographic() *Orthographic {
	return &Orthographic{
		transform: newTransform(),
		left:      -1,
		right:     1,
		top:       1,
		bottom:    -1,
		near:      DefaultNear,
		far:       DefaultFar,
		zoom:      1,
		projDirty: true,
	}
}

// Frustum returns the four frustum edges (left, right, top, bottom).
func (o *Orthographic) Frustum() (left, right, top, bottom float32) {
	return o.left, o.right, o.top, o.bottom
}

// SetFrustum replaces the four frustum edges.
func (o *Orthographic) SetFrustum(left, right, top, bottom float32) {
	o.left, o.right, o.top, o.bottom = left, right, top, bottom
	o.projDirty = true
}

// Near returns the near clip distance.
func (o *Orthographic) Near() float32 { return o.near }

// Far returns the far clip distance.
func (o *Orthographic) Far() float32 { return o.far }

// SetClip replaces the near and far clip distances.
func (o *Orthographic) SetClip(near, far float32) {
	o.near, o.far = near, far
	o.projDirty = true
}

// Zoom returns the zoom factor.
func (o *Orthographic) Zoom() float32 { return o.zoom }

// SetZoom replaces the zoom factor.
func (o *Orthographic) SetZoom(zoom float32) {
	o.zoom = zoom
	o.projDirty = true
}

// MarkDirty invalidates both cached matrices.
func (o *Orthographic) MarkDirty() {
	o.projDirty = true
	o.viewDirty = true
}

// ProjectionMatrix returns the camera-to-clip transform. The frustum
// edges are divided by zoom before the matrix is built.
func (o *Orthographic) ProjectionMatrix() mgl32.Mat4 {
	if o.projDirty {
		z := o.zoom
		if z == 0 {
			z = 1
		}
		o.proj = mgl32.Ortho(o.left/z, o.right/z, o.bottom/z, o.top/z, o.near, o.far)
		o.projDirty = false
	}
	return o.proj
}
