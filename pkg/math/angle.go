// Package math provides math types and functions for 2D skeletal animation.
package math

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / math.Pi
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float32) float32 {
	d := float32(math.Mod(float64(deg), 360))
	if d < 0 {
		d += 360
	}
	return d
}

// WrapDeg wraps a signed angle difference into [-180, 180].
func WrapDeg(deg float32) float32 {
	d := float32(math.Mod(float64(deg), 360))
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// Lerp linearly interpolates between a and b. t should be in [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// LerpDeg interpolates between two angles along the shortest arc.
// Both angles are normalized first, so interpolating 350 -> 10 sweeps
// through 0/360 rather than backward through 180. The result is in [0, 360).
func LerpDeg(a, b, t float32) float32 {
	a = NormalizeDeg(a)
	b = NormalizeDeg(b)
	return NormalizeDeg(a + t*WrapDeg(b-a))
}

// SinCosDeg returns the sine and cosine of an angle in degrees.
func SinCosDeg(deg float32) (sin, cos float32) {
	s, c := math.Sincos(float64(DegToRad(deg)))
	return float32(s), float32(c)
}

// Mod returns the floating-point remainder of x/y with the sign of x.
func Mod(x, y float32) float32 {
	return float32(math.Mod(float64(x), float64(y)))
}
