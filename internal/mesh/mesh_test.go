package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-rig/internal/body"
	"animal-rig/internal/mathutil"
	"animal-rig/internal/skeleton"
)

var block = mathutil.Vec2{0.125, 0.25}

func pt(dx, dy, size float64, tex body.Textures, limbs ...body.Limb) body.BodyPoint {
	return body.BodyPoint{Dir: mathutil.Vec2{dx, dy}, Size: size, Textures: tex, Limbs: limbs}
}

func build(t *testing.T, a body.Animal) (*skeleton.Skeleton, []Mesh) {
	t.Helper()
	s, err := skeleton.Build(a)
	require.NoError(t, err)
	meshes, err := Build(a, s, block)
	require.NoError(t, err)
	return s, meshes
}

func blendedAnimal() body.Animal {
	leg := body.Limb{
		Name:                "leg",
		Displacement:        mathutil.Vec3{0.1, 0, -0.5},
		TextureDisplacement: 5,
		Points: []body.BodyPoint{
			pt(0, -1, 0.2, body.Single(0)),
			pt(0, -1, 0.2, body.Single(0)),
			pt(0.3, 0, 0.1, body.Single(0)),
		},
	}
	return body.NewAnimal([]body.BodyPoint{
		pt(1, 0, 1, body.Single(0)),
		pt(1, 0.2, 1, body.Textures{{Index: 0, Weight: 0.7}, {Index: 1, Weight: 0.3}}, leg),
		pt(1, -0.2, 1, body.Textures{{Index: 1, Weight: 0.6}, {Index: 0, Weight: 0.4}}),
		pt(1, 0, 0.8, body.Single(1)),
		pt(0.5, 0, 0.1, body.Single(1)),
	})
}

func TestBuildOneMeshPerLimb(t *testing.T) {
	_, meshes := build(t, blendedAnimal())
	require.Len(t, meshes, 2)
	assert.Equal(t, "spine", meshes[0].Limb)
	assert.Equal(t, "leg", meshes[1].Limb)

	// Four segments of four fan triangles each.
	assert.Len(t, meshes[0].Tris, 16)
	assert.Len(t, meshes[0].Verts, 48)
	assert.Len(t, meshes[1].Tris, 8)
}

func TestBuildWeightsAndBones(t *testing.T) {
	s, meshes := build(t, blendedAnimal())
	for _, m := range meshes {
		for i := range m.Verts {
			var sum float64
			for k := 0; k < BonesPerVertex; k++ {
				sum += m.Weights[i][k]
				b := m.Bones[i][k]
				require.GreaterOrEqual(t, b, 0)
				require.Less(t, b, len(s.Bones))
				if m.Weights[i][k] > 0 {
					assert.Equal(t, m.Limb, s.Bones[b].Limb, "vertex influenced by its own limb")
				}
			}
			assert.InDelta(t, 1, sum, 1e-12)
		}
	}
}

func TestBuildGeometry(t *testing.T) {
	a := body.NewAnimal([]body.BodyPoint{
		pt(2, 0, 1, body.Single(3)),
		pt(2, 0, 0.5, body.Single(3)),
	})
	s, meshes := build(t, a)
	m := meshes[0]
	require.Len(t, m.Verts, 12)

	// Triangle 0: near-bottom, near-top, center.
	assert.Equal(t, mathutil.Vec3{0, 0.5, 0}, m.Verts[0])
	assert.Equal(t, mathutil.Vec3{0, -0.5, 0}, m.Verts[1])
	assert.Equal(t, mathutil.Vec3{1, 0, 0}, m.Verts[2])
	// Triangle 1 ends at the far top corner, mitered by the far size.
	assert.Equal(t, mathutil.Vec3{2, -0.25, 0}, m.Verts[4])

	// UVs land in atlas cell (column 0, row 3).
	assert.Equal(t, mathutil.Vec2{0, 0.75}, m.UVs[0])
	assert.Equal(t, mathutil.Vec2{0, 1}, m.UVs[1])
	assert.Equal(t, mathutil.Vec2{0.0625, 0.875}, m.UVs[2])
	assert.Equal(t, [4]float64{0, 0, 1, 0}, m.Colors[0])

	spine0, _ := s.Find("spine_0")
	// Center vertex splits between the two bones, both spine_0 for segment 0.
	assert.Equal(t, [BonesPerVertex]float64{0.5, 0.5, 0, 0}, m.Weights[2])
	assert.Equal(t, spine0, m.Bones[2][0])
}

func TestBuildSkinThresholds(t *testing.T) {
	bones, weights := skin(3, 4, 0)
	assert.Equal(t, [BonesPerVertex]int{3, 0, 0, 0}, bones)
	assert.Equal(t, [BonesPerVertex]float64{1, 0, 0, 0}, weights)

	bones, weights = skin(3, 4, 1)
	assert.Equal(t, [BonesPerVertex]int{4, 0, 0, 0}, bones)
	assert.Equal(t, [BonesPerVertex]float64{1, 0, 0, 0}, weights)

	bones, weights = skin(3, 4, 0.5)
	assert.Equal(t, [BonesPerVertex]int{3, 4, 0, 0}, bones)
	assert.Equal(t, [BonesPerVertex]float64{0.5, 0.5, 0, 0}, weights)
}

func TestBuildSecondSegmentUsesPreviousBone(t *testing.T) {
	a := body.NewAnimal([]body.BodyPoint{
		pt(1, 0, 1, body.Single(0)),
		pt(1, 0, 1, body.Single(0)),
		pt(1, 0, 1, body.Single(0)),
	})
	s, meshes := build(t, a)
	m := meshes[0]
	spine0, _ := s.Find("spine_0")
	spine1, _ := s.Find("spine_1")

	// Segment 1 starts at vertex 12; its near corner follows spine_0 and its
	// far corner follows spine_1.
	assert.Equal(t, spine0, m.Bones[12][0])
	assert.Equal(t, spine1, m.Bones[12+4][0])
	assert.Equal(t, 1.0, m.Weights[12+4][0])
}

func TestBuildTextureBlendEncoding(t *testing.T) {
	_, meshes := build(t, blendedAnimal())
	m := meshes[0]

	// Segment 1 (vertices 12..23) blends textures 1 and 0 in column 1; the
	// pair is ordered by the far point's slots.
	v := 12 // near-bottom corner
	assert.Equal(t, mathutil.Vec2{0.125, 0.25}, m.UVs[v])
	assert.Equal(t, mathutil.Vec2{0.125, 0}, m.SecondUV(v))
	assert.InDelta(t, 0.3, m.BlendAlpha(v), 1e-12)

	// Far corner takes the far point's weight for the same texture.
	far := 12 + 4
	assert.InDelta(t, 0.6, m.BlendAlpha(far), 1e-12)

	// Segment 0 fades texture 1 in from zero at its far end.
	assert.InDelta(t, 1, m.BlendAlpha(0), 1e-12)
	assert.InDelta(t, 0.7, m.BlendAlpha(4), 1e-12)
}

func TestBuildChildLimbPlacement(t *testing.T) {
	_, meshes := build(t, blendedAnimal())
	leg := meshes[1]
	// Leg attaches at spine point 1 (x=1) plus its displacement.
	first := leg.Verts[0]
	assert.InDelta(t, 1.1+0.1, first[0], 1e-9)
	assert.InDelta(t, 0, first[1], 1e-9)
	assert.Equal(t, -0.5, first[2])
}

func TestBuildTextureMismatch(t *testing.T) {
	a := body.NewAnimal([]body.BodyPoint{
		pt(1, 0, 1, body.Single(0)),
		pt(1, 0, 1, body.Single(2)),
	})
	s, err := skeleton.Build(a)
	require.NoError(t, err)
	_, err = Build(a, s, block)
	assert.ErrorIs(t, err, ErrTextureMismatch)
}

func TestMatchTextures(t *testing.T) {
	near, far, err := matchTextures(
		body.Textures{{Index: 1, Weight: 1}},
		body.Textures{{Index: 2, Weight: 0.4}, {Index: 1, Weight: 0.6}},
	)
	require.NoError(t, err)
	assert.Equal(t, []body.TextureSlot{{Index: 2}, {Index: 1, Weight: 1}}, near)
	assert.Equal(t, []body.TextureSlot{{Index: 2, Weight: 0.4}, {Index: 1, Weight: 0.6}}, far)

	near, far, err = matchTextures(
		body.Textures{{Index: 1, Weight: 0.5}, {Index: 2, Weight: 0.5}},
		body.Textures{{Index: 2, Weight: 0.9}, {Index: 1, Weight: 0.1}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, near[0].Index)
	assert.Equal(t, 2, far[0].Index)

	_, _, err = matchTextures(
		body.Textures{{Index: 1, Weight: 0.5}, {Index: 2, Weight: 0.5}},
		body.Textures{{Index: 2, Weight: 0.5}, {Index: 3, Weight: 0.5}},
	)
	assert.ErrorIs(t, err, ErrTextureMismatch)
}

func TestDimensions(t *testing.T) {
	a := body.NewAnimal([]body.BodyPoint{
		pt(2, 0, 1, body.Single(0)),
		pt(2, 0, 1, body.Single(0)),
	})
	_, meshes := build(t, a)
	size, center := Dimensions(meshes)
	assert.InDelta(t, 1, size[0], 1e-9)
	assert.InDelta(t, 0.5, size[1], 1e-9)
	assert.Equal(t, 1.0, size[2])
	assert.InDelta(t, 1, center[0], 1e-9)
	assert.InDelta(t, 0, center[1], 1e-9)
}
