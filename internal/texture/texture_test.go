package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-rig/internal/mathutil"
)

var block = mathutil.Vec2{0.125, 0.125}

func TestGrid(t *testing.T) {
	cols, rows := Grid(block)
	assert.Equal(t, 8, cols)
	assert.Equal(t, 8, rows)

	cols, rows = Grid(mathutil.Vec2{0.25, 0.5})
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, rows)
}

func TestGenerate(t *testing.T) {
	img := Generate(block, 16)
	require.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())

	// Rows differ by texture id.
	fox := img.NRGBAAt(1, 16+1)
	turtle := img.NRGBAAt(1, 32+1)
	assert.NotEqual(t, fox, turtle)
	assert.Greater(t, fox.R, fox.B)
	assert.Greater(t, turtle.G, turtle.R)

	// Leg columns are darker than body columns.
	body := img.NRGBAAt(1, 1)
	leg := img.NRGBAAt(LegColumn*16+1, 1)
	assert.Less(t, leg.R, body.R)
	assert.Equal(t, uint8(255), leg.A)
}

func TestLoadPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.SetNRGBA(3, 1, color.NRGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "atlas.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, img.NRGBAAt(3, 1))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	img := Generate(block, 4)
	assert.Same(t, img, Fit(img, 32))
	assert.Equal(t, image.Rect(0, 0, 64, 64), Fit(img, 64).Bounds())
}

func TestCache(t *testing.T) {
	c := NewCache(block, 8)

	var wg sync.WaitGroup
	imgs := make([]*image.NRGBA, 8)
	for i := range imgs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := c.Resolve("")
			assert.NoError(t, err)
			imgs[i] = img
		}()
	}
	wg.Wait()
	for _, img := range imgs[1:] {
		assert.Same(t, imgs[0], img)
	}

	_, err := c.Resolve("/nonexistent/atlas.png")
	assert.Error(t, err)
}
