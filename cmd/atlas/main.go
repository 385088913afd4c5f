package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"animal-rig/internal/mathutil"
	"animal-rig/internal/texture"
)

func main() {
	in := flag.String("in", "", "Atlas to convert (default: generate)")
	out := flag.String("out", "atlas.webp", "Output WebP path")
	cells := flag.Int("cells", 8, "Atlas cells per side")
	cellPx := flag.Int("cell-px", 64, "Pixels per generated cell")
	size := flag.Int("size", 0, "Rescale to size x size (0: keep)")
	flag.Parse()

	if *cells <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -cells must be positive")
		os.Exit(1)
	}
	block := mathutil.Vec2{1 / float64(*cells), 1 / float64(*cells)}

	var img *image.NRGBA
	if *in != "" {
		var err error
		img, err = texture.Load(*in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			os.Exit(1)
		}
	} else {
		img = texture.Generate(block, *cellPx)
	}
	if *size > 0 {
		img = texture.Fit(img, *size)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "ERR encode %s: %v\n", *out, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	cols, rows := texture.Grid(block)
	fmt.Printf("OK  %s (%dx%d, %dx%d cells)\n", *out, b.Dx(), b.Dy(), cols, rows)
}
