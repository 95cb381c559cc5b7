package rig

import "sort"

// DrawRecord is everything a rendering backend needs to rasterize one bone:
// its world transform, pivot, authored rectangle size, z-order, and texture
// handle. The core never calls into a rendering API itself.
type DrawRecord struct {
	Name           string
	X, Y           float32
	Rotation       float32 // degrees
	ScaleX, ScaleY float32
	PivotX, PivotY float32
	Width, Height  float32
	ZOrder         int
	Texture        uint32
}

// DrawList is one frame's draw records in z-order, plus the skeleton-level
// placement the backend needs to apply the horizontal mirror.
type DrawList struct {
	OriginX, OriginY float32
	FlipX            bool
	Records          []DrawRecord
}

// DrawRecords runs a fresh pre-order traversal and returns the skeleton's
// bones as draw records sorted by ZOrder ascending. The sort is stable:
// ties keep pre-order (parent before child, insertion order among siblings).
func (s *Skeleton) DrawRecords() DrawList {
	list := DrawList{
		OriginX: s.X,
		OriginY: s.Y,
		FlipX:   s.FlipX,
	}
	if s.root == nil {
		return list
	}

	s.root.ComputeWorldTransform(s.rootTransform())

	list.Records = make([]DrawRecord, 0, len(s.bones))
	s.root.walk(func(b *Bone) {
		list.Records = append(list.Records, DrawRecord{
			Name:     b.Name,
			X:        b.World.X,
			Y:        b.World.Y,
			Rotation: b.World.Rotation,
			ScaleX:   b.World.ScaleX,
			ScaleY:   b.World.ScaleY,
			PivotX:   b.PivotX,
			PivotY:   b.PivotY,
			Width:    b.Width,
			Height:   b.Height,
			ZOrder:   b.ZOrder,
			Texture:  b.Texture,
		})
	})

	sort.SliceStable(list.Records, func(i, j int) bool {
		return list.Records[i].ZOrder < list.Records[j].ZOrder
	})
	return list
}
