// Package rig implements the 2D skeletal animation core: bone hierarchies
// with parent-child transform composition, keyframe animations with
// time-based sampling, and per-skeleton playback and blending state.
package rig

import (
	mmath "github.com/Faultbox/skelrig/pkg/math"
)

// Transform is a 2D pose: offset from the parent, rotation in degrees,
// and non-uniform scale.
type Transform struct {
	X, Y     float32
	Rotation float32 // degrees, kept in [0, 360)
	ScaleX   float32
	ScaleY   float32
}

// IdentityTransform returns the inert pose (no offset, no rotation, scale 1).
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Bone is a node in a skeleton's rigid hierarchy. A bone exclusively owns
// its children; the tree has no cycles and no shared nodes. Bone names must
// be unique per skeleton, enforced by the owning Skeleton.
type Bone struct {
	Name string

	// Local pose relative to the parent bone.
	Local Transform

	// Pivot is the normalized anchor (0..1) within the bone's own rectangle
	// about which rotation and scale apply at draw time. It is never folded
	// into the propagated transform, so children are unaffected by it.
	PivotX, PivotY float32

	// ZOrder is a pure rendering sort key, unrelated to hierarchy.
	ZOrder int

	// Texture is an opaque handle owned by the asset-loading subsystem.
	Texture uint32

	// Authored pixel size of the bone's image rectangle.
	Width, Height float32

	// World transform, valid only for the traversal that computed it.
	World Transform

	parent   *Bone
	children []*Bone
}

// NewBone creates a bone with an identity local pose and a centered pivot.
func NewBone(name string) *Bone {
	return &Bone{
		Name:   name,
		Local:  IdentityTransform(),
		PivotX: 0.5,
		PivotY: 0.5,
	}
}

// AddChild attaches child to b. It is a no-op if child is nil, is b itself,
// or is already attached somewhere. Name uniqueness across the tree is the
// owning Skeleton's responsibility, not the bone's.
func (b *Bone) AddChild(child *Bone) {
	if child == nil || child == b || child.parent != nil {
		return
	}
	child.parent = b
	b.children = append(b.children, child)
}

// Parent returns the bone's parent, or nil for a root.
func (b *Bone) Parent() *Bone {
	return b.parent
}

// Children returns the bone's children in insertion order. The returned
// slice is owned by the bone and must not be modified.
func (b *Bone) Children() []*Bone {
	return b.children
}

// SetLocalPosition sets the bone's offset from its parent.
func (b *Bone) SetLocalPosition(x, y float32) {
	b.Local.X = x
	b.Local.Y = y
}

// SetRotation sets the bone's local rotation in degrees, wrapped into [0, 360).
func (b *Bone) SetRotation(deg float32) {
	b.Local.Rotation = mmath.NormalizeDeg(deg)
}

// SetScale sets the bone's local scale factors.
func (b *Bone) SetScale(sx, sy float32) {
	b.Local.ScaleX = sx
	b.Local.ScaleY = sy
}

// ComputeWorldTransform recomputes the world transform of b and all of its
// descendants from the given parent world transform. Traversal is pre-order:
// a parent's world transform is final before any child reads it.
//
// World position is the parent position plus the local offset rotated and
// scaled by the parent's world rotation and scale. Rotations add, scales
// multiply component-wise. The pivot takes no part in composition.
func (b *Bone) ComputeWorldTransform(parent Transform) {
	sin, cos := mmath.SinCosDeg(parent.Rotation)
	ox := b.Local.X * parent.ScaleX
	oy := b.Local.Y * parent.ScaleY

	b.World.X = parent.X + ox*cos - oy*sin
	b.World.Y = parent.Y + ox*sin + oy*cos
	b.World.Rotation = mmath.NormalizeDeg(parent.Rotation + b.Local.Rotation)
	b.World.ScaleX = parent.ScaleX * b.Local.ScaleX
	b.World.ScaleY = parent.ScaleY * b.Local.ScaleY

	for _, child := range b.children {
		child.ComputeWorldTransform(b.World)
	}
}

// walk visits b and all descendants pre-order.
func (b *Bone) walk(fn func(*Bone)) {
	fn(b)
	for _, child := range b.children {
		child.walk(fn)
	}
}
