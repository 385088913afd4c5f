package raster

import (
	"image"
	"math"

	"animal-rig/internal/mathutil"
)

// Sample performs bilinear filtering with clamped addressing, so atlas cells
// at the image border do not bleed into the opposite edge. Channels are in
// 0..255.
func Sample(tex *image.NRGBA, uv mathutil.Vec2) [4]float64 {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return [4]float64{}
	}

	fx := clampUnit(uv[0])*float64(w) - 0.5
	fy := clampUnit(uv[1])*float64(h) - 0.5
	ix, iy := int(math.Floor(fx)), int(math.Floor(fy))
	x0, y0 := clampInt(ix, w), clampInt(iy, h)
	x1, y1 := clampInt(ix+1, w), clampInt(iy+1, h)
	dx := fx - float64(ix)
	dy := fy - float64(iy)

	stride := tex.Stride
	pix := tex.Pix
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]float64
	for c := 0; c < 4; c++ {
		out[c] = float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 +
			float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11
	}
	return out
}

// mix blends two samples, a weighted by alpha.
func mix(a, b [4]float64, alpha float64) [4]float64 {
	var out [4]float64
	for c := range out {
		out[c] = a[c]*alpha + b[c]*(1-alpha)
	}
	return out
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func clampInt(v, n int) int {
	switch {
	case v < 0:
		return 0
	case v >= n:
		return n - 1
	}
	return v
}
