package texture

import (
	"image"
	"image/color"
	"math"

	"animal-rig/internal/mathutil"
)

// palette holds the base color of each default texture id.
var palette = []color.NRGBA{
	{236, 226, 204, 255}, // chicken
	{214, 110, 46, 255},  // fox
	{86, 140, 72, 255},   // turtle
	{120, 120, 128, 255},
	{170, 140, 96, 255},
	{70, 90, 150, 255},
	{160, 70, 110, 255},
	{200, 190, 80, 255},
}

// LegColumn is the first atlas column the default templates use for legs.
const LegColumn = 5

// Grid returns the atlas cell counts for a UV block size.
func Grid(blockSize mathutil.Vec2) (cols, rows int) {
	return int(math.Round(1 / blockSize[0])), int(math.Round(1 / blockSize[1]))
}

// Generate paints a procedural atlas with cellPx-sized cells. Each row is a
// flat palette color with a soft checker so segment seams stay visible; leg
// columns are darkened.
func Generate(blockSize mathutil.Vec2, cellPx int) *image.NRGBA {
	cols, rows := Grid(blockSize)
	img := image.NewNRGBA(image.Rect(0, 0, cols*cellPx, rows*cellPx))
	check := max(cellPx/4, 1)
	for y := 0; y < rows*cellPx; y++ {
		row := y / cellPx
		base := palette[row%len(palette)]
		for x := 0; x < cols*cellPx; x++ {
			col := x / cellPx
			k := 1.0
			if col >= LegColumn {
				k = 0.7
			}
			if ((x%cellPx)/check+(y%cellPx)/check)%2 == 0 {
				k *= 1.1
			}
			img.SetNRGBA(x, y, scale(base, k))
		}
	}
	return img
}

func scale(c color.NRGBA, k float64) color.NRGBA {
	ch := func(v uint8) uint8 {
		return uint8(math.Min(float64(v)*k, 255))
	}
	return color.NRGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}
