package raster

import (
	"image"
	"math"

	"animal-rig/internal/mathutil"
)

// vertex is a projected vertex with its shading attributes.
type vertex struct {
	x, y, z float64
	uv0     mathutil.Vec2
	uv1     mathutil.Vec2
	alpha   float64 // weight of uv0's texture
}

// fallback is used when no atlas is bound.
var fallback = [4]float64{160, 160, 170, 255}

// rasterizeTriangle fills one flat-shaded triangle with z-buffering. Each
// pixel samples the atlas at both interpolated UVs and mixes them by the
// interpolated blend alpha.
//
// Hot path: no allocation in the pixel loop.
func rasterizeTriangle(fb *FrameBuffer, v [3]vertex, tex *image.NRGBA, shade float64, light *Light) {
	x0, y0 := v[0].x, v[0].y
	x1, y1 := v[1].x, v[1].y
	x2, y2 := v[2].x, v[2].y

	minX := max(int(math.Min(math.Min(x0, x1), x2)), 0)
	maxX := min(int(math.Max(math.Max(x0, x1), x2))+1, fb.Width-1)
	minY := max(int(math.Min(math.Min(y0, y1), y2)), 0)
	maxY := min(int(math.Max(math.Max(y0, y1), y2))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*v[0].z + w1*v[1].z + w2*v[2].z
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			c := fallback
			if tex != nil {
				uv0 := v[0].uv0.Mul(w0).Add(v[1].uv0.Mul(w1)).Add(v[2].uv0.Mul(w2))
				alpha := w0*v[0].alpha + w1*v[1].alpha + w2*v[2].alpha
				c = Sample(tex, uv0)
				if alpha < 1 {
					uv1 := v[0].uv1.Mul(w0).Add(v[1].uv1.Mul(w1)).Add(v[2].uv1.Mul(w2))
					c = mix(c, Sample(tex, uv1), alpha)
				}
			}

			// Skip transparent texels
			if c[3] < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			r, g, b := light.apply(c, shade)
			px := zIdx * 4
			fb.Color[px] = r
			fb.Color[px+1] = g
			fb.Color[px+2] = b
			fb.Color[px+3] = clamp255(c[3])
		}
	}
}
