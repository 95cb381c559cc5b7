package rig

import (
	"sort"

	mmath "github.com/Faultbox/skelrig/pkg/math"
)

// playState is the skeleton's playback mode. Modeling it explicitly keeps
// illegal combinations (a blend with no source animation) unrepresentable.
type playState int

const (
	stateIdle playState = iota
	statePlaying
	stateBlending
)

// playback pairs an animation with the skeleton-owned time cursor that
// advances it. The animation itself is never mutated.
type playback struct {
	anim *BoneAnimation
	time float32
}

func (p *playback) rewind(anim *BoneAnimation) {
	p.anim = anim
	p.time = 0
}

// Skeleton owns a bone tree, a library of animations, and the active
// playback state. One skeleton drives one character instance; Update must
// be called once per frame from the owning game loop and is not safe for
// concurrent use.
type Skeleton struct {
	// Global placement of the whole skeleton.
	X, Y  float32
	Scale float32 // uniform multiplier on top of bone scales
	FlipX bool    // horizontal mirror for facing direction

	root  *Bone
	bones map[string]*Bone

	animations map[string]*BoneAnimation

	state         playState
	current       playback
	next          playback
	blendElapsed  float32
	blendDuration float32
}

// NewSkeleton creates an empty skeleton at the origin with scale 1.
func NewSkeleton() *Skeleton {
	return &Skeleton{
		Scale:      1,
		bones:      make(map[string]*Bone),
		animations: make(map[string]*BoneAnimation),
	}
}

// SetRoot replaces the skeleton's bone tree and rebuilds the flat
// name-to-bone index. Duplicate names in the tree keep the first occurrence.
func (s *Skeleton) SetRoot(root *Bone) {
	s.root = root
	s.bones = make(map[string]*Bone)
	if root == nil {
		return
	}
	root.walk(func(b *Bone) {
		if _, exists := s.bones[b.Name]; !exists {
			s.bones[b.Name] = b
		}
	})
}

// Root returns the root bone, or nil if none has been set.
func (s *Skeleton) Root() *Bone {
	return s.root
}

// BoneByName looks up a bone in the flat index.
func (s *Skeleton) BoneByName(name string) *Bone {
	return s.bones[name]
}

// AttachBone adds child under the named parent bone. It reports false and
// leaves the tree untouched if the parent is unknown or the child's name is
// already taken in this skeleton.
func (s *Skeleton) AttachBone(parentName string, child *Bone) bool {
	parent := s.bones[parentName]
	if parent == nil || child == nil {
		return false
	}
	if _, taken := s.bones[child.Name]; taken {
		return false
	}
	parent.AddChild(child)
	s.bones[child.Name] = child
	return true
}

// AddAnimation registers an animation in the skeleton's library, replacing
// any previous animation with the same name.
func (s *Skeleton) AddAnimation(anim *BoneAnimation) {
	if anim == nil {
		return
	}
	s.animations[anim.Name] = anim
}

// Animation returns the named animation, or nil if unregistered.
func (s *Skeleton) Animation(name string) *BoneAnimation {
	return s.animations[name]
}

// AnimationNames returns the sorted names of all registered animations.
func (s *Skeleton) AnimationNames() []string {
	names := make([]string, 0, len(s.animations))
	for name := range s.animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlayAnimation switches immediately to the named animation, restarting it
// from time zero and cancelling any pending blend. Requesting the animation
// that is already current is a no-op unless a blend is pending, in which
// case the blend is cancelled. Unknown names are ignored: content is
// data-driven and a missing animation must not take down playback.
func (s *Skeleton) PlayAnimation(name string) {
	anim := s.animations[name]
	if anim == nil {
		return
	}
	if s.state == statePlaying && s.current.anim.Name == name {
		return
	}
	if s.state == stateBlending && s.current.anim.Name == name {
		// Same animation with a blend pending: keep playing it, drop the blend.
		s.cancelBlend()
		s.state = statePlaying
		return
	}
	s.current.rewind(anim)
	s.cancelBlend()
	s.state = statePlaying
}

// TransitionTo starts a timed blend from the current animation toward the
// named one. From idle it behaves like PlayAnimation, as does a
// non-positive blend duration. Re-targeting during a blend restarts the
// blend toward the new target: last call wins. Transitioning to the
// animation that is already current with no blend pending is a no-op.
// Unknown names are ignored.
func (s *Skeleton) TransitionTo(name string, blendDuration float32) {
	anim := s.animations[name]
	if anim == nil {
		return
	}
	if s.state == stateIdle || blendDuration <= 0 {
		s.PlayAnimation(name)
		return
	}
	if s.state == statePlaying && s.current.anim.Name == name {
		return
	}
	s.next.rewind(anim)
	s.blendElapsed = 0
	s.blendDuration = blendDuration
	s.state = stateBlending
}

// IsPlaying reports whether the named animation is the current one. A
// pending blend target does not count until it is promoted.
func (s *Skeleton) IsPlaying(name string) bool {
	return s.state != stateIdle && s.current.anim.Name == name
}

func (s *Skeleton) cancelBlend() {
	s.next = playback{}
	s.blendElapsed = 0
	s.blendDuration = 0
}

// Update advances playback by dt seconds, writes the sampled (and, during a
// blend, interpolated) pose onto the bones, and recomputes every world
// transform with a fresh pre-order traversal. World transforms are only
// ever valid for the traversal that produced them, so Update recomputes
// them even when idle.
func (s *Skeleton) Update(dt float32) {
	switch s.state {
	case statePlaying:
		s.current.time += dt
		s.applyPose(s.current.anim.Sample(s.current.time))

	case stateBlending:
		s.current.time += dt
		s.next.time += dt

		source := s.current.anim.Sample(s.current.time)
		target := s.next.anim.Sample(s.next.time)

		// Interpolate with the progress before this frame's advance, so the
		// first blend frame still shows the pure source pose.
		t := s.blendElapsed / s.blendDuration
		if t > 1 {
			t = 1
		}
		s.applyBlendedPose(source, target, t)

		s.blendElapsed += dt
		if s.blendElapsed >= s.blendDuration {
			s.current = s.next
			s.cancelBlend()
			s.state = statePlaying
		}
	}

	if s.root != nil {
		s.root.ComputeWorldTransform(s.rootTransform())
	}
}

// applyPose writes sampled local transforms to the bones they name. Bone
// names with no match in this skeleton are skipped.
func (s *Skeleton) applyPose(pose map[string]Transform) {
	for name, tr := range pose {
		if bone := s.bones[name]; bone != nil {
			bone.Local = tr
		}
	}
}

// applyBlendedPose interpolates between two sampled poses for every bone
// named by either animation. A bone only the target animation tracks blends
// from its current pose toward the target, which avoids a visible pop when
// a bone is newly introduced; a bone only the source tracks keeps following
// the source until promotion.
func (s *Skeleton) applyBlendedPose(source, target map[string]Transform, t float32) {
	for name, from := range source {
		bone := s.bones[name]
		if bone == nil {
			continue
		}
		to, ok := target[name]
		if !ok {
			to = from
		}
		bone.Local = lerpTransform(from, to, t)
	}

	for name, to := range target {
		if _, ok := source[name]; ok {
			continue
		}
		bone := s.bones[name]
		if bone == nil {
			continue
		}
		bone.Local = lerpTransform(bone.Local, to, t)
	}
}

func lerpTransform(a, b Transform, t float32) Transform {
	return Transform{
		X:        mmath.Lerp(a.X, b.X, t),
		Y:        mmath.Lerp(a.Y, b.Y, t),
		Rotation: mmath.LerpDeg(a.Rotation, b.Rotation, t),
		ScaleX:   mmath.Lerp(a.ScaleX, b.ScaleX, t),
		ScaleY:   mmath.Lerp(a.ScaleY, b.ScaleY, t),
	}
}

// rootTransform is the implicit parent transform of the root bone: the
// skeleton's world placement and uniform scale.
func (s *Skeleton) rootTransform() Transform {
	return Transform{
		X:      s.X,
		Y:      s.Y,
		ScaleX: s.Scale,
		ScaleY: s.Scale,
	}
}
