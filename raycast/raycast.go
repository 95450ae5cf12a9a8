// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raycast provides pointer picking against the active stage camera.
//
// A Raycaster is configured from normalized device coordinates and a camera
// snapshot, and offers intersection helpers against simple bounding volumes.
// Scene consumers walk their own hierarchies and test each node's bounds.
package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/stage/camera"
)

// Ray is a half-line in world space. Dir is unit length.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Raycaster casts rays derived from pointer positions. Near and Far bound
// the accepted hit distance along the ray.
type Raycaster struct {
	Ray  Ray
	Near float32
	Far  float32
}

// Config is the option bag applied onto a freshly constructed default
// raycaster at store construction time. Zero fields keep defaults
// (near 0, far +Inf).
type Config struct {
	Near float32
	Far  float32
}

// New returns a raycaster accepting hits anywhere along the ray.
func New(cfg Config) *Raycaster {
	r := &Raycaster{
		Far: float32(math.Inf(1)),
	}
	if cfg.Near != 0 {
		r.Near = cfg.Near
	}
	if cfg.Far != 0 {
		r.Far = cfg.Far
	}
	return r
}

// SetFromCamera points the ray through ndc, the pointer position in
// normalized device coordinates (x, y in [-1, 1], y up).
//
// For a perspective camera the ray starts at the camera position and passes
// through the unprojected pointer. For an orthographic camera the ray starts
// on the near plane under the pointer and runs along the view direction.
func (rc *Raycaster) SetFromCamera(ndc mgl32.Vec2, cam camera.Camera) {
	inv := cam.ProjectionMatrix().Mul4(cam.ViewMatrix()).Inv()

	switch cam.(type) {
	case *camera.Orthographic:
		near := mgl32.TransformCoordinate(mgl32.Vec3{ndc.X(), ndc.Y(), -1}, inv)
		rc.Ray = Ray{Origin: near, Dir: cam.Forward()}
	default:
		target := mgl32.TransformCoordinate(mgl32.Vec3{ndc.X(), ndc.Y(), 0.5}, inv)
		origin := cam.WorldPosition()
		rc.Ray = Ray{Origin: origin, Dir: target.Sub(origin).Normalize()}
	}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// IntersectSphere reports the nearest hit distance within [Near, Far],
// if any.
func (rc *Raycaster) IntersectSphere(s Sphere) (float32, bool) {
	oc := rc.Ray.Origin.Sub(s.Center)
	b := oc.Dot(rc.Ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	for _, t := range [2]float32{-b - sq, -b + sq} {
		if t >= rc.Near && t <= rc.Far {
			return t, true
		}
	}
	return 0, false
}

// IntersectAABB reports the nearest hit distance within [Near, Far],
// if any. Uses the slab method.
func (rc *Raycaster) IntersectAABB(box AABB) (float32, bool) {
	tmin := rc.Near
	tmax := rc.Far
	for i := 0; i < 3; i++ {
		o := rc.Ray.Origin[i]
		d := rc.Ray.Dir[i]
		if d == 0 {
			if o < box.Min[i] || o > box.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[i] - o) / d
		t2 := (box.Max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
