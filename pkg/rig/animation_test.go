package rig

import (
	"testing"
)

func walkCycle() *BoneAnimation {
	anim := NewBoneAnimation("walk", 1.0, false)
	anim.AddKeyframe("leg", Keyframe{Time: 0, X: 0, Y: 0, Rotation: 350, ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("leg", Keyframe{Time: 0.5, X: 10, Y: 20, Rotation: 10, ScaleX: 2, ScaleY: 3})
	anim.AddKeyframe("leg", Keyframe{Time: 1.0, X: 0, Y: 0, Rotation: 350, ScaleX: 1, ScaleY: 1})
	return anim
}

func TestSample_ExactKeyframeRecall(t *testing.T) {
	anim := walkCycle()

	tests := []struct {
		time float32
		want Transform
	}{
		{0, Transform{X: 0, Y: 0, Rotation: 350, ScaleX: 1, ScaleY: 1}},
		{0.5, Transform{X: 10, Y: 20, Rotation: 10, ScaleX: 2, ScaleY: 3}},
	}

	for _, tt := range tests {
		pose := anim.Sample(tt.time)
		got, ok := pose["leg"]
		if !ok {
			t.Fatalf("Sample(%v) missing leg track", tt.time)
		}
		if got != tt.want {
			t.Errorf("Sample(%v) = %+v, want %+v", tt.time, got, tt.want)
		}
	}
}

func TestSample_ClampBeforeFirst(t *testing.T) {
	anim := NewBoneAnimation("idle", 1.0, false)
	anim.AddKeyframe("arm", Keyframe{Time: 0.2, X: 5, Rotation: 45, ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("arm", Keyframe{Time: 0.8, X: 9, Rotation: 90, ScaleX: 1, ScaleY: 1})

	got := anim.Sample(0.1)["arm"]
	if got.X != 5 || got.Rotation != 45 {
		t.Errorf("Sample before first keyframe = %+v, want first keyframe pose", got)
	}
}

func TestSample_ClampAfterLast_NonLooping(t *testing.T) {
	anim := walkCycle()

	got := anim.Sample(5.0)["leg"]
	want := Transform{X: 0, Y: 0, Rotation: 350, ScaleX: 1, ScaleY: 1}
	if got != want {
		t.Errorf("Sample past duration = %+v, want last keyframe pose %+v", got, want)
	}
}

func TestSample_SingleKeyframe(t *testing.T) {
	anim := NewBoneAnimation("pose", 1.0, false)
	anim.AddKeyframe("head", Keyframe{Time: 0.5, X: 3, Y: 4, Rotation: 30, ScaleX: 1, ScaleY: 1})

	for _, time := range []float32{0, 0.5, 2} {
		got := anim.Sample(time)["head"]
		if got.X != 3 || got.Y != 4 || got.Rotation != 30 {
			t.Errorf("Sample(%v) = %+v, want the single keyframe pose", time, got)
		}
	}
}

func TestSample_LoopWraparound(t *testing.T) {
	anim := NewBoneAnimation("run", 1.0, true)
	anim.AddKeyframe("leg", Keyframe{Time: 0, X: 0, ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("leg", Keyframe{Time: 0.5, X: 10, ScaleX: 1, ScaleY: 1})

	eps := float32(0.01)
	wrapped := anim.Sample(1.0 + eps)["leg"]
	direct := anim.Sample(eps)["leg"]

	if !almostEqual(wrapped.X, direct.X, 0.001) {
		t.Errorf("looped Sample(D+eps).X = %v, want Sample(eps).X = %v", wrapped.X, direct.X)
	}
}

func TestSample_LinearInterpolation(t *testing.T) {
	anim := NewBoneAnimation("swing", 1.0, false)
	anim.AddKeyframe("arm", Keyframe{Time: 0, X: 0, Y: 10, ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("arm", Keyframe{Time: 1, X: 10, Y: 20, ScaleX: 3, ScaleY: 5})

	got := anim.Sample(0.5)["arm"]
	if !almostEqual(got.X, 5, 0.001) || !almostEqual(got.Y, 15, 0.001) {
		t.Errorf("midpoint position = (%v, %v), want (5, 15)", got.X, got.Y)
	}
	if !almostEqual(got.ScaleX, 2, 0.001) || !almostEqual(got.ScaleY, 3, 0.001) {
		t.Errorf("midpoint scale = (%v, %v), want (2, 3)", got.ScaleX, got.ScaleY)
	}
}

func TestSample_ShortestArcRotation(t *testing.T) {
	// 350 -> 10 sweeps through 0/360, so the midpoint is 0, not 180
	anim := NewBoneAnimation("turn", 1.0, false)
	anim.AddKeyframe("body", Keyframe{Time: 0, Rotation: 350, ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("body", Keyframe{Time: 1, Rotation: 10, ScaleX: 1, ScaleY: 1})

	got := anim.Sample(0.5)["body"]
	if !almostEqual(got.Rotation, 0, 0.001) && !almostEqual(got.Rotation, 360, 0.001) {
		t.Errorf("midpoint rotation = %v, want 0", got.Rotation)
	}
}

func TestAddKeyframe_OutOfOrderResorts(t *testing.T) {
	anim := NewBoneAnimation("jumbled", 1.0, false)
	anim.AddKeyframe("leg", Keyframe{Time: 0.8, X: 8, ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("leg", Keyframe{Time: 0.2, X: 2, ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("leg", Keyframe{Time: 0.5, X: 5, ScaleX: 1, ScaleY: 1})

	track := anim.Keyframes("leg")
	for i := 1; i < len(track); i++ {
		if track[i].Time < track[i-1].Time {
			t.Fatalf("track not sorted: %v after %v", track[i].Time, track[i-1].Time)
		}
	}

	// Sampling at an exact time returns that keyframe's value
	if got := anim.Sample(0.2)["leg"]; got.X != 2 {
		t.Errorf("Sample(0.2).X = %v, want 2", got.X)
	}
}

func TestAnimatedBoneNames(t *testing.T) {
	anim := NewBoneAnimation("multi", 1.0, false)
	anim.AddKeyframe("leg_right", Keyframe{ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("arm_left", Keyframe{ScaleX: 1, ScaleY: 1})
	anim.AddKeyframe("leg_right", Keyframe{Time: 0.5, ScaleX: 1, ScaleY: 1})

	got := anim.AnimatedBoneNames()
	want := []string{"arm_left", "leg_right"}
	if len(got) != len(want) {
		t.Fatalf("AnimatedBoneNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AnimatedBoneNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSample_DoesNotMutate(t *testing.T) {
	anim := walkCycle()

	before := anim.Sample(0.25)["leg"]
	anim.Sample(0.9)
	after := anim.Sample(0.25)["leg"]

	if before != after {
		t.Errorf("Sample mutated animation state: %+v != %+v", before, after)
	}
}
