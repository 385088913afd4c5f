package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 and Vec3 are value types shared by every geometry package.
type (
	Vec2 = mgl64.Vec2
	Vec3 = mgl64.Vec3
)

// Normalize2 returns v scaled to unit length, or the zero vector when v is
// (nearly) zero-length. mgl64's Normalize divides by zero in that case.
func Normalize2(v Vec2) Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v[0] / l, v[1] / l}
}

// Tangent returns v rotated by -90°: (y, -x).
func Tangent(v Vec2) Vec2 {
	return Vec2{v[1], -v[0]}
}

// Angle returns the angle of v from the +X axis in radians.
func Angle(v Vec2) float64 {
	return math.Atan2(v[1], v[0])
}

// Rotate2 rotates v counter-clockwise by a radians.
func Rotate2(v Vec2, a float64) Vec2 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec2{c*v[0] - s*v[1], s*v[0] + c*v[1]}
}

// Lerp2 interpolates a→b by t.
func Lerp2(a, b Vec2, t float64) Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// Planar lifts a 2D vector into the XY plane.
func Planar(v Vec2) Vec3 {
	return Vec3{v[0], v[1], 0}
}
