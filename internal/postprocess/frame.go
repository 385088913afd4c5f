package postprocess

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Frame crops img to its opaque pixels and scales the crop to fill fillRatio
// of a size × size transparent canvas, centered.
func Frame(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	box, ok := opaqueBounds(img)
	if !ok {
		return canvas
	}

	w, h := float64(box.Dx()), float64(box.Dy())
	k := float64(size) * fillRatio / math.Max(w, h)
	nw, nh := max(int(w*k+0.5), 1), max(int(h*k+0.5), 1)
	off := image.Pt((size-nw)/2, (size-nh)/2)
	draw.CatmullRom.Scale(canvas, image.Rectangle{Min: off, Max: off.Add(image.Pt(nw, nh))}, img, box, draw.Src, nil)
	return canvas
}

// opaqueBounds returns the bounding box of pixels with nonzero alpha.
func opaqueBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	box := image.Rectangle{}
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				box, found = px, true
			} else {
				box = box.Union(px)
			}
		}
	}
	return box, found
}

// FlipHorizontal mirrors an image left-to-right.
func FlipHorizontal(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			si := img.PixOffset(b.Max.X-1-x, b.Min.Y+y)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}

// Background composites img over a solid color. A fully transparent bg
// returns img unchanged.
func Background(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	if bg.A == 0 {
		return img
	}
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
