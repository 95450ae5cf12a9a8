// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene provides the persistent node hierarchy a declarative
// reconciler mutates between frames.
//
// The package deliberately defines no geometry or material types: a Node is
// a named transform with children and an opaque UserData slot. Renderers
// attach their own payloads through UserData and walk the tree once per
// frame.
package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of the scene graph. The zero value is not usable;
// construct nodes with NewNode.
//
// Local transform is stored as translate/rotate/scale and composed lazily.
// World matrices are refreshed top-down by UpdateWorld on the root.
type Node struct {
	Name     string
	Visible  bool
	UserData any

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	parent   *Node
	children []*Node

	local      mgl32.Mat4
	localDirty bool
	world      mgl32.Mat4
}

// NewNode returns a visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:       name,
		Visible:    true,
		rotation:   mgl32.QuatIdent(),
		scale:      mgl32.Vec3{1, 1, 1},
		local:      mgl32.Ident4(),
		world:      mgl32.Ident4(),
		localDirty: false,
	}
}

// Position returns the local translation.
func (n *Node) Position() mgl32.Vec3 { return n.position }

// SetPosition replaces the local translation.
func (n *Node) SetPosition(p mgl32.Vec3) {
	n.position = p
	n.localDirty = true
}

// Rotation returns the local orientation.
func (n *Node) Rotation() mgl32.Quat { return n.rotation }

// SetRotation replaces the local orientation.
func (n *Node) SetRotation(q mgl32.Quat) {
	n.rotation = q.Normalize()
	n.localDirty = true
}

// Scale returns the local scale.
func (n *Node) Scale() mgl32.Vec3 { return n.scale }

// SetScale replaces the local scale.
func (n *Node) SetScale(s mgl32.Vec3) {
	n.scale = s
	n.localDirty = true
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The returned slice is owned by
// the node; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Add appends child to n, detaching it from any previous parent first.
// Adding a node to its current parent is a no-op.
func (n *Node) Add(child *Node) {
	if child == nil || child == n || child.parent == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Removing a node that is not a child is a
// no-op, so Remove is idempotent.
func (n *Node) Remove(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
}

// LocalMatrix returns the translate ∘ rotate ∘ scale composition,
// recomputing it if the transform changed.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	if n.localDirty {
		n.local = mgl32.Translate3D(n.position.X(), n.position.Y(), n.position.Z()).
			Mul4(n.rotation.Mat4()).
			Mul4(mgl32.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z()))
		n.localDirty = false
	}
	return n.local
}

// WorldMatrix returns the world transform as of the last UpdateWorld.
func (n *Node) WorldMatrix() mgl32.Mat4 { return n.world }

// UpdateWorld recomputes world matrices for n and its subtree, top-down.
// Call it on the root once per frame before rendering.
func (n *Node) UpdateWorld() {
	if n.parent != nil {
		n.world = n.parent.world.Mul4(n.LocalMatrix())
	} else {
		n.world = n.LocalMatrix()
	}
	for _, c := range n.children {
		c.UpdateWorld()
	}
}

// Traverse visits n and its subtree depth-first. Returning false from fn
// skips the current node's children (the walk continues with siblings).
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Find returns the first node named name in n's subtree (including n
// itself), or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}
