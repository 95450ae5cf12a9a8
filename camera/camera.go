// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the contract the stage store and its collaborators rely on.
// Exactly one Camera is active per store at any time; it is replaced
// wholesale via the store's SetCamera.
type Camera interface {
	// WorldPosition returns the camera position in world space.
	WorldPosition() mgl32.Vec3

	// Forward returns the unit view direction in world space.
	Forward() mgl32.Vec3

	// ViewMatrix returns the world-to-camera transform,
	// recomputing it if the transform changed.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the camera-to-clip transform,
	// recomputing it if projection parameters changed.
	ProjectionMatrix() mgl32.Mat4

	// Zoom returns the zoom factor applied on top of the projection.
	Zoom() float32

	// SetZoom replaces the zoom factor and marks the projection dirty.
	SetZoom(zoom float32)

	// MarkDirty invalidates both cached matrices so the next accessor
	// call recomputes them. The resize reactor calls this after editing
	// projection parameters.
	MarkDirty()
}

// transform is the positional state shared by both camera types.
// The view matrix is the inverse of the world transform (translate ∘ rotate).
type transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat

	view      mgl32.Mat4
	viewDirty bool
}

func newTransform() transform {
	return transform{
		position:  mgl32.Vec3{0, 0, 5},
		rotation:  mgl32.QuatIdent(),
		viewDirty: true,
	}
}

// WorldPosition returns the camera position in world space.
func (t *transform) WorldPosition() mgl32.Vec3 { return t.position }

// SetPosition moves the camera and marks the view matrix dirty.
func (t *transform) SetPosition(p mgl32.Vec3) {
	t.position = p
	t.viewDirty = true
}

// Rotation returns the camera orientation quaternion.
func (t *transform) Rotation() mgl32.Quat { return t.rotation }

// SetRotation replaces the camera orientation and marks the view matrix dirty.
func (t *transform) SetRotation(q mgl32.Quat) {
	t.rotation = q.Normalize()
	t.viewDirty = true
}

// Forward returns the unit view direction in world space.
// An identity rotation looks down -Z.
func (t *transform) Forward() mgl32.Vec3 {
	return t.rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// LookAt orients the camera toward target with +Y up.
func (t *transform) LookAt(target mgl32.Vec3) {
	t.rotation = mgl32.QuatLookAtV(t.position, target, mgl32.Vec3{0, 1, 0}).Normalize()
	t.viewDirty = true
}

// ViewMatrix returns the world-to-camera transform.
func (t *transform) ViewMatrix() mgl32.Mat4 {
	if t.viewDirty {
		world := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z()).
			Mul4(t.rotation.Mat4())
		t.view = world.Inv()
		t.viewDirty = false
	}
	return t.view
}
