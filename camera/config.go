// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Config is the option bag applied onto a freshly constructed default
// camera at store construction time. Zero-valued fields keep the camera's
// defaults; Position is only applied when HasPosition is set (the origin
// is a legitimate camera position).
type Config struct {
	// FOV is the vertical field of view in degrees (perspective only).
	FOV float32

	// Near and Far are the clip distances.
	Near float32
	Far  float32

	// Zoom is the projection zoom factor.
	Zoom float32

	// Position places the camera in world space when HasPosition is true.
	Position    mgl32.Vec3
	HasPosition bool
}

// ApplyPerspective overlays the non-zero fields of c onto p.
func (c Config) ApplyPerspective(p *Perspective) {
	if c.FOV != 0 {
		p.SetFOV(c.FOV)
	}
	n, f := p.Near(), p.Far()
	if c.Near != 0 {
		n = c.Near
	}
	if c.Far != 0 {
		f = c.Far
	}
	p.SetClip(n, f)
	if c.Zoom != 0 {
		p.SetZoom(c.Zoom)
	}
	if c.HasPosition {
		p.SetPosition(c.Position)
	}
}

// ApplyOrthographic overlays the non-zero fields of c onto o.
// FOV is ignored for orthographic cameras.
func (c Config) ApplyOrthographic(o *Orthographic) {
	n, f := o.Near(), o.Far()
	if c.Near != 0 {
		n = c.Near
	}
	if c.Far != 0 {
		f = c.Far
	}
	o.SetClip(n, f)
	if c.Zoom != 0 {
		o.SetZoom(c.Zoom)
	}
	if c.HasPosition {
		o.SetPosition(c.Position)
	}
}
