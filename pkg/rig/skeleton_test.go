package rig

import (
	"testing"
)

// testSkeleton builds a root with two leg bones and registers simple
// animations for them.
func testSkeleton() *Skeleton {
	root := NewBone("torso")
	left := NewBone("leg_left")
	right := NewBone("leg_right")
	root.AddChild(left)
	root.AddChild(right)

	s := NewSkeleton()
	s.SetRoot(root)

	walk := NewBoneAnimation("walk", 1.0, true)
	walk.AddKeyframe("leg_left", Keyframe{Time: 0, Rotation: 330, ScaleX: 1, ScaleY: 1})
	walk.AddKeyframe("leg_left", Keyframe{Time: 0.5, Rotation: 30, ScaleX: 1, ScaleY: 1})
	walk.AddKeyframe("leg_left", Keyframe{Time: 1.0, Rotation: 330, ScaleX: 1, ScaleY: 1})
	s.AddAnimation(walk)

	idle := NewBoneAnimation("idle", 1.0, true)
	idle.AddKeyframe("leg_left", Keyframe{Time: 0, Rotation: 0, ScaleX: 1, ScaleY: 1})
	s.AddAnimation(idle)

	return s
}

func TestPlayAnimation_UnknownIsNoop(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("nonexistent")

	if s.IsPlaying("nonexistent") {
		t.Error("unknown animation reported as playing")
	}

	// A later Update must not panic with no animation set
	s.Update(0.016)
}

func TestPlayAnimation_SetsCurrent(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")

	if !s.IsPlaying("walk") {
		t.Error("IsPlaying(walk) = false after PlayAnimation")
	}
	if s.IsPlaying("idle") {
		t.Error("IsPlaying(idle) = true, want false")
	}
}

func TestPlayAnimation_SameNameKeepsCursor(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")
	s.Update(0.25)

	// Re-requesting the current animation with no blend pending is a no-op
	s.PlayAnimation("walk")
	if s.current.time != 0.25 {
		t.Errorf("cursor reset to %v on redundant PlayAnimation, want 0.25", s.current.time)
	}
}

func TestPlayAnimation_CancelsPendingBlend(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")
	s.TransitionTo("idle", 0.5)

	if s.state != stateBlending {
		t.Fatal("expected blending state after TransitionTo")
	}

	s.PlayAnimation("walk")
	if s.state != statePlaying {
		t.Errorf("state = %v after PlayAnimation(current), want playing", s.state)
	}
	if s.next.anim != nil {
		t.Error("pending blend target not cleared")
	}

	// Playback continues on the current animation with no blend target left.
	s.Update(0.016)
	if !s.IsPlaying("walk") {
		t.Error("IsPlaying(walk) = false after cancelled blend")
	}
}

func TestTransitionTo_FromIdlePlaysImmediately(t *testing.T) {
	s := testSkeleton()
	s.TransitionTo("walk", 0.5)

	if s.state != statePlaying {
		t.Error("TransitionTo from idle should behave like PlayAnimation")
	}
	if !s.IsPlaying("walk") {
		t.Error("IsPlaying(walk) = false")
	}
}

func TestTransitionTo_ZeroDurationIsInstant(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")
	s.TransitionTo("idle", 0)

	if s.state != statePlaying {
		t.Error("zero blend duration should switch instantly, not blend")
	}
	if !s.IsPlaying("idle") {
		t.Error("IsPlaying(idle) = false after instant transition")
	}

	// No divide-by-zero on the next update
	s.Update(0.016)
}

func TestTransitionTo_BlendTargetNotPlayingUntilPromoted(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")
	s.TransitionTo("idle", 0.5)

	if !s.IsPlaying("walk") {
		t.Error("source animation should still be the current one during a blend")
	}
	if s.IsPlaying("idle") {
		t.Error("pending blend target must not count as playing")
	}

	s.Update(0.6) // past blendDuration: promote
	if !s.IsPlaying("idle") {
		t.Error("target not promoted after blend completes")
	}
	if s.state != statePlaying {
		t.Errorf("state = %v after promotion, want playing", s.state)
	}
}

func TestTransitionTo_RetargetRestartsBlend(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")
	s.TransitionTo("idle", 1.0)
	s.Update(0.4)

	// Last call wins: retargeting resets the blend clock
	s.TransitionTo("walk", 1.0)
	if s.blendElapsed != 0 {
		t.Errorf("blendElapsed = %v after retarget, want 0", s.blendElapsed)
	}
	if s.next.anim == nil || s.next.anim.Name != "walk" {
		t.Error("blend target not replaced")
	}
}

func TestUpdate_AppliesSampledPose(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")
	s.Update(0.25)

	// Midpoint of 330 -> 30 through 0 is 0
	leg := s.BoneByName("leg_left")
	if !almostEqual(leg.Local.Rotation, 0, 0.01) && !almostEqual(leg.Local.Rotation, 360, 0.01) {
		t.Errorf("leg rotation = %v, want 0", leg.Local.Rotation)
	}
}

func TestUpdate_BlendBoundaryContinuity(t *testing.T) {
	s := testSkeleton()
	s.PlayAnimation("walk")
	s.Update(0.25) // leg at rotation 0

	s.TransitionTo("idle", 1.0)

	// The first blend frame interpolates with zero progress: pure source pose
	s.Update(0.001)
	leg := s.BoneByName("leg_left")
	start := s.current.anim.Sample(s.current.time)["leg_left"].Rotation
	if !almostEqual(mustWrap(leg.Local.Rotation-start), 0, 0.01) {
		t.Errorf("pose at blend start = %v, want source pose %v", leg.Local.Rotation, start)
	}

	// Stepping past the end promotes; the next frame plays the pure target
	s.Update(1.0)
	s.Update(0.016)
	leg = s.BoneByName("leg_left")
	if !almostEqual(leg.Local.Rotation, 0, 0.01) && !almostEqual(leg.Local.Rotation, 360, 0.01) {
		t.Errorf("pose at blend end = %v, want target pose 0", leg.Local.Rotation)
	}
}

// mustWrap folds a degree delta into [-180, 180] for comparisons.
func mustWrap(d float32) float32 {
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}

func TestUpdate_TargetOnlyBoneBlendsFromCurrentPose(t *testing.T) {
	s := testSkeleton()

	// tail is only animated by the target animation
	swish := NewBoneAnimation("swish", 1.0, true)
	swish.AddKeyframe("leg_right", Keyframe{Time: 0, Rotation: 90, ScaleX: 1, ScaleY: 1})
	s.AddAnimation(swish)

	right := s.BoneByName("leg_right")
	right.SetRotation(40)

	s.PlayAnimation("walk")
	s.TransitionTo("swish", 1.0)

	// First frame applies zero progress, so the bone holds its own pose.
	s.Update(0.5)
	if !almostEqual(right.Local.Rotation, 40, 0.01) {
		t.Errorf("target-only bone rotation = %v at blend start, want 40", right.Local.Rotation)
	}

	// Halfway through the blend the bone is between its own pose (40) and
	// the target (90), not between a default pose and the target.
	s.Update(0.5)
	if !almostEqual(right.Local.Rotation, 65, 1.0) {
		t.Errorf("target-only bone rotation = %v, want about 65", right.Local.Rotation)
	}
}

func TestUpdate_IdleStillRecomputesWorldTransforms(t *testing.T) {
	s := testSkeleton()
	s.X = 100
	s.Y = 50
	s.Update(0.016)

	root := s.Root()
	if root.World.X != 100 || root.World.Y != 50 {
		t.Errorf("idle root world = (%v, %v), want (100, 50)", root.World.X, root.World.Y)
	}
}

func TestUpdate_SkeletonScaleAppliesToTree(t *testing.T) {
	s := testSkeleton()
	s.Scale = 2
	leg := s.BoneByName("leg_left")
	leg.SetLocalPosition(10, 0)

	s.Update(0.016)

	if leg.World.X != 20 {
		t.Errorf("leg world X = %v with skeleton scale 2, want 20", leg.World.X)
	}
	if leg.World.ScaleX != 2 {
		t.Errorf("leg world scale = %v, want 2", leg.World.ScaleX)
	}
}

func TestAttachBone_RejectsDuplicateName(t *testing.T) {
	s := testSkeleton()
	dup := NewBone("leg_left")

	if s.AttachBone("torso", dup) {
		t.Error("AttachBone accepted a duplicate bone name")
	}
	if s.BoneByName("leg_left").Parent() == nil {
		t.Error("existing bone displaced by rejected attach")
	}
}

func TestAttachBone_UnknownParent(t *testing.T) {
	s := testSkeleton()
	if s.AttachBone("no_such_bone", NewBone("tail")) {
		t.Error("AttachBone accepted an unknown parent")
	}
	if s.BoneByName("tail") != nil {
		t.Error("bone indexed despite failed attach")
	}
}

func TestDrawRecords_SortedByZOrder(t *testing.T) {
	root := NewBone("torso")
	root.ZOrder = 5
	back := NewBone("arm_back")
	back.ZOrder = 1
	front := NewBone("arm_front")
	front.ZOrder = 9
	root.AddChild(back)
	root.AddChild(front)

	s := NewSkeleton()
	s.SetRoot(root)

	list := s.DrawRecords()
	if len(list.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(list.Records))
	}
	want := []string{"arm_back", "torso", "arm_front"}
	for i, rec := range list.Records {
		if rec.Name != want[i] {
			t.Errorf("record %d = %q, want %q", i, rec.Name, want[i])
		}
	}
}

func TestDrawRecords_StableTies(t *testing.T) {
	root := NewBone("torso")
	a := NewBone("a")
	b := NewBone("b")
	root.AddChild(a)
	root.AddChild(b)
	// All z-orders equal: pre-order must be preserved

	s := NewSkeleton()
	s.SetRoot(root)

	list := s.DrawRecords()
	want := []string{"torso", "a", "b"}
	for i, rec := range list.Records {
		if rec.Name != want[i] {
			t.Errorf("record %d = %q, want %q", i, rec.Name, want[i])
		}
	}
}

func TestDrawRecords_CarriesFlipAndOrigin(t *testing.T) {
	s := testSkeleton()
	s.X = 30
	s.Y = 40
	s.FlipX = true

	list := s.DrawRecords()
	if !list.FlipX || list.OriginX != 30 || list.OriginY != 40 {
		t.Errorf("draw list placement = (%v, %v, flip %v), want (30, 40, true)",
			list.OriginX, list.OriginY, list.FlipX)
	}
}
