package raster

import (
	"math"

	"animal-rig/internal/mathutil"
)

// Light is a single directional light with ambient fill, applied per face.
type Light struct {
	Dir      mathutil.Vec3
	Ambient  float64
	Direct   float64
	Exposure float64
	InvGamma float64
}

// DefaultLight lights the XY plane mostly head-on with a slight top-left bias.
func DefaultLight() Light {
	return Light{
		Dir:      mathutil.Vec3{-0.3, 0.4, 1}.Normalize(),
		Ambient:  0.45,
		Direct:   0.9,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the lighting scalar for a face normal. Faces are double-sided.
func (l *Light) Shade(normal mathutil.Vec3) float64 {
	return l.Ambient + math.Abs(normal.Dot(l.Dir))*l.Direct
}

// apply lights an sRGB color in linear space and tone maps it back.
func (l *Light) apply(c [4]float64, shade float64) (r, g, b uint8) {
	k := shade * l.Exposure
	out := [3]uint8{}
	for i := 0; i < 3; i++ {
		lin := srgbToLinear[clamp255(c[i])] * k
		out[i] = clamp255(math.Pow(ACESTonemap(lin), l.InvGamma) * 255)
	}
	return out[0], out[1], out[2]
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
