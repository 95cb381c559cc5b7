package rig

import (
	"sort"

	mmath "github.com/Faultbox/skelrig/pkg/math"
)

// Keyframe is a timestamped pose sample for one bone within one animation.
type Keyframe struct {
	Time     float32 // seconds, >= 0
	X, Y     float32
	Rotation float32 // degrees
	ScaleX   float32
	ScaleY   float32
}

// BoneAnimation is a named, timed collection of per-bone keyframe tracks.
// Once registered on a Skeleton it is treated as read-only: sampling never
// mutates the animation, so one animation may back many skeletons of the
// same character type. Playback cursors live on the Skeleton.
type BoneAnimation struct {
	Name     string
	Duration float32 // seconds
	Loop     bool

	tracks map[string][]Keyframe
}

// NewBoneAnimation creates an empty animation.
func NewBoneAnimation(name string, duration float32, loop bool) *BoneAnimation {
	return &BoneAnimation{
		Name:     name,
		Duration: duration,
		Loop:     loop,
		tracks:   make(map[string][]Keyframe),
	}
}

// AddKeyframe appends a keyframe to the named bone's track. Tracks stay
// sorted by time; the import pipeline does not guarantee insertion order,
// so an out-of-order insert triggers a resort rather than a rejection.
func (a *BoneAnimation) AddKeyframe(boneName string, kf Keyframe) {
	track := append(a.tracks[boneName], kf)
	if n := len(track); n > 1 && kf.Time < track[n-2].Time {
		sort.SliceStable(track, func(i, j int) bool {
			return track[i].Time < track[j].Time
		})
	}
	a.tracks[boneName] = track
}

// Keyframes returns the named bone's track, sorted by time, or nil if the
// animation does not touch that bone. The slice is owned by the animation.
func (a *BoneAnimation) Keyframes(boneName string) []Keyframe {
	return a.tracks[boneName]
}

// AnimatedBoneNames returns the sorted set of bone names this animation has
// at least one track for.
func (a *BoneAnimation) AnimatedBoneNames() []string {
	names := make([]string, 0, len(a.tracks))
	for name := range a.tracks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample returns the interpolated pose of every animated bone at the given
// time. Bones without a track at that name are simply absent from the
// result; the animation only overrides bones it has tracks for.
//
// Times before the first keyframe clamp to it. Times past the last keyframe
// wrap into [0, Duration) when looping, otherwise clamp to the last
// keyframe. Position and scale interpolate linearly; rotation interpolates
// along the shortest arc.
func (a *BoneAnimation) Sample(time float32) map[string]Transform {
	t := time
	if t < 0 {
		t = 0
	}
	if a.Loop && a.Duration > 0 && t >= a.Duration {
		t = mmath.Mod(t, a.Duration)
	}

	pose := make(map[string]Transform, len(a.tracks))
	for name, track := range a.tracks {
		pose[name] = sampleTrack(track, t)
	}
	return pose
}

// sampleTrack interpolates one bone's track at time t. The track must be
// non-empty and time-sorted.
func sampleTrack(track []Keyframe, t float32) Transform {
	first := track[0]
	if len(track) == 1 || t <= first.Time {
		return keyframePose(first)
	}

	last := track[len(track)-1]
	if t >= last.Time {
		return keyframePose(last)
	}

	// Find the bracketing pair k0.Time <= t <= k1.Time.
	hi := 1
	for hi < len(track) && track[hi].Time < t {
		hi++
	}
	k0 := track[hi-1]
	k1 := track[hi]

	span := k1.Time - k0.Time
	if span <= 0 {
		return keyframePose(k0)
	}
	f := (t - k0.Time) / span

	return Transform{
		X:        mmath.Lerp(k0.X, k1.X, f),
		Y:        mmath.Lerp(k0.Y, k1.Y, f),
		Rotation: mmath.LerpDeg(k0.Rotation, k1.Rotation, f),
		ScaleX:   mmath.Lerp(k0.ScaleX, k1.ScaleX, f),
		ScaleY:   mmath.Lerp(k0.ScaleY, k1.ScaleY, f),
	}
}

func keyframePose(k Keyframe) Transform {
	return Transform{
		X:        k.X,
		Y:        k.Y,
		Rotation: mmath.NormalizeDeg(k.Rotation),
		ScaleX:   k.ScaleX,
		ScaleY:   k.ScaleY,
	}
}
