package rig

import (
	"fmt"

	"github.com/Faultbox/skelrig/pkg/formats"
)

// BuildSkeleton constructs a live skeleton from a validated rig definition.
// Bone entries may appear in any order; texture handles are left zero for
// the asset-loading subsystem to assign.
func BuildSkeleton(def *formats.RigDef) (*Skeleton, error) {
	bones := make(map[string]*Bone, len(def.Bones))
	var root *Bone

	for i := range def.Bones {
		bd := &def.Bones[i]
		bone := NewBone(bd.Name)
		bone.SetLocalPosition(bd.X, bd.Y)
		bone.SetRotation(bd.Rotation)
		bone.SetScale(bd.ScaleXY())
		bone.PivotX, bone.PivotY = bd.PivotXY()
		bone.ZOrder = bd.ZOrder
		bone.Width = bd.Width
		bone.Height = bd.Height
		bones[bd.Name] = bone
		if bd.Parent == "" {
			root = bone
		}
	}

	for i := range def.Bones {
		bd := &def.Bones[i]
		if bd.Parent == "" {
			continue
		}
		parent := bones[bd.Parent]
		if parent == nil {
			return nil, fmt.Errorf("%w: bone %q references %q", formats.ErrRigUnknownParent, bd.Name, bd.Parent)
		}
		parent.AddChild(bones[bd.Name])
	}

	if root == nil {
		return nil, formats.ErrRigNoRoot
	}

	skel := NewSkeleton()
	skel.SetRoot(root)
	return skel, nil
}
