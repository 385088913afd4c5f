package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat3 and Mat4 are column-major matrices.
type (
	Mat3 = mgl64.Mat3
	Mat4 = mgl64.Mat4
)

// Translation builds a pure translation transform.
func Translation(t Vec3) Mat4 {
	return mgl64.Translate3D(t[0], t[1], t[2])
}

// RotationZ builds a rotation about +Z. Angle in radians, counter-clockwise.
func RotationZ(a float64) Mat4 {
	return mgl64.HomogRotate3DZ(a)
}

// MulPoint transforms a 3D point (w=1) by m.
func MulPoint(m Mat4, v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// Origin returns the translation part of an affine transform.
func Origin(m Mat4) Vec3 {
	return m.Col(3).Vec3()
}

// AngleZ extracts the rotation about +Z from an affine transform whose
// basis only rotates in the XY plane.
func AngleZ(m Mat4) float64 {
	return math.Atan2(m.At(1, 0), m.At(0, 0))
}

// IsIdentity checks if the matrix is approximately identity.
func IsIdentity(m Mat4) bool {
	return m.ApproxEqualThreshold(mgl64.Ident4(), 1e-8)
}

// ViewMatrix returns the preview camera rotation: Rx(pitch) @ Ry(yaw), degrees.
func ViewMatrix(pitchDeg, yawDeg float64) Mat3 {
	return mgl64.Rotate3DX(Deg2Rad(pitchDeg)).Mul3(mgl64.Rotate3DY(Deg2Rad(yawDeg)))
}

// Mat4Ident returns the 4×4 identity.
func Mat4Ident() Mat4 {
	return mgl64.Ident4()
}
