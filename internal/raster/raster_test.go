package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-rig/internal/mathutil"
	"animal-rig/internal/mesh"
	"animal-rig/internal/skeleton"
	"animal-rig/internal/templates"
	"animal-rig/internal/texture"
)

var block = mathutil.Vec2{0.125, 0.125}

func build(t *testing.T, name string) (*skeleton.Skeleton, []mesh.Mesh) {
	t.Helper()
	a, err := templates.Get(name)
	require.NoError(t, err)
	s, err := skeleton.Build(a)
	require.NoError(t, err)
	meshes, err := mesh.Build(a, s, block)
	require.NoError(t, err)
	return s, meshes
}

func TestSampleClamps(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})

	assert.Equal(t, [4]float64{255, 0, 0, 255}, Sample(tex, mathutil.Vec2{0, 0}))
	assert.Equal(t, [4]float64{0, 0, 255, 255}, Sample(tex, mathutil.Vec2{1, 0}))
	assert.Equal(t, [4]float64{0, 0, 255, 255}, Sample(tex, mathutil.Vec2{1.5, 0}))

	mid := Sample(tex, mathutil.Vec2{0.5, 0})
	assert.InDelta(t, 127.5, mid[0], 1e-9)
	assert.InDelta(t, 127.5, mid[2], 1e-9)
}

func TestMix(t *testing.T) {
	got := mix([4]float64{200, 0, 0, 255}, [4]float64{0, 100, 0, 255}, 0.25)
	assert.Equal(t, [4]float64{50, 75, 0, 255}, got)
}

func TestSkinVerticesRestPose(t *testing.T) {
	s, meshes := build(t, "chicken")
	skin := s.SkinMatrices()
	for i := range meshes {
		posed := SkinVertices(&meshes[i], skin)
		for j, v := range posed {
			assert.InDeltaSlice(t, meshes[i].Verts[j][:], v[:], 1e-9)
		}
	}
}

func TestSkinVerticesFollowBone(t *testing.T) {
	s, meshes := build(t, "chicken")
	chain := s.Chain("front_leg")
	s.SetPoseRotation(chain[0], 1.0)
	skin := s.SkinMatrices()

	var leg *mesh.Mesh
	for i := range meshes {
		if meshes[i].Limb == "front_leg" {
			leg = &meshes[i]
		}
	}
	require.NotNil(t, leg)

	posed := SkinVertices(leg, skin)
	moved := 0
	for j, v := range posed {
		if v.Sub(leg.Verts[j]).Len() > 1e-6 {
			moved++
		}
	}
	assert.Greater(t, moved, 0)
}

func TestRenderDrawsModel(t *testing.T) {
	s, meshes := build(t, "chicken")
	atlas := texture.Generate(block, 8)

	img := Render(meshes, s.SkinMatrices(), atlas, Options{Size: 64, Supersample: 1, Margin: 4})
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	opaque := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			opaque++
		}
	}
	assert.Greater(t, opaque, 64)
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
}

func TestRenderWithoutAtlas(t *testing.T) {
	s, meshes := build(t, "fox")
	img := Render(meshes, s.SkinMatrices(), nil, Options{Size: 32, Supersample: 2})
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	opaque := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 255 {
			opaque++
		}
	}
	assert.Greater(t, opaque, 0)
}

func TestRenderEmpty(t *testing.T) {
	img := Render(nil, nil, nil, Options{Size: 8})
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	assert.Equal(t, uint8(0), img.NRGBAAt(4, 4).A)
}
