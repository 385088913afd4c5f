package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-rig/internal/body"
	"animal-rig/internal/mathutil"
	"animal-rig/internal/mesh"
	"animal-rig/internal/skeleton"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"chicken", "fox", "turtle"}, Names())
}

func TestGetChicken(t *testing.T) {
	a, err := Get("chicken")
	require.NoError(t, err)

	pts := a.Body.Points
	require.Len(t, pts, 6)
	assert.Equal(t, body.RootLimbName, a.Body.Name)
	assert.Equal(t, mathutil.Vec2{0.5, -1.0}, pts[1].Dir)
	assert.True(t, pts[1].Discontinuous)
	assert.Equal(t, body.Single(0), pts[0].Textures)

	legs := pts[3].Limbs
	require.Len(t, legs, 2)
	assert.Equal(t, "front_leg", legs[0].Name)
	assert.Equal(t, "back_leg", legs[1].Name)
	assert.Equal(t, mathutil.Vec3{0.3, 0.1, -1.0}, legs[0].Displacement)
	assert.Equal(t, 5, legs[1].TextureDisplacement)
	assert.Len(t, legs[0].Points, 4)
	assert.Equal(t, 14, a.SegmentCount())
}

func TestGetReturnsFreshCopies(t *testing.T) {
	a, err := Get("chicken")
	require.NoError(t, err)
	a.Body.Points[3].Limbs[0].Points[0].Size = 99

	b, err := Get("chicken")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, b.Body.Points[3].Limbs[0].Points[0].Size, 1e-12)
	// Aliased legs decode into separate slices.
	assert.InDelta(t, 0.1, a.Body.Points[3].Limbs[1].Points[0].Size, 1e-12)
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("dragon")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	a, err := Parse([]byte(`
name: stick
points:
  - {dir: [1, 0], size: 1, textures: [{index: 3, weight: 1}]}
  - {dir: [1, 0], size: 0.5, textures: [{index: 3, weight: 0.5}, {index: 4, weight: 0.5}]}
`))
	require.NoError(t, err)
	require.Len(t, a.Body.Points, 2)
	assert.Len(t, a.Body.Points[1].Textures, 2)

	_, err = Parse([]byte("points: [{dir: [1, 0], size: 1}]"))
	assert.ErrorIs(t, err, body.ErrInvalid)

	_, err = Parse([]byte("points: [{dir: [1, 0, 0]}]"))
	assert.Error(t, err)
}

func TestTemplatesBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			a, err := Get(name)
			require.NoError(t, err)
			s, err := skeleton.Build(a)
			require.NoError(t, err)
			_, err = mesh.Build(a, s, mathutil.Vec2{0.125, 0.125})
			require.NoError(t, err)
		})
	}
}

func TestDefaultRecipe(t *testing.T) {
	a, err := DefaultRecipe().Animal()
	require.NoError(t, err)

	pts := a.Body.Points
	require.Len(t, pts, 8)
	require.Len(t, pts[2].Limbs, 1)
	assert.Equal(t, "back_leg", pts[2].Limbs[0].Name)
	require.Len(t, pts[4].Limbs, 1)
	assert.Equal(t, "front_leg", pts[4].Limbs[0].Name)
	// Discontinuities only carry over from inputs with weight.
	assert.False(t, pts[1].Discontinuous)
	assert.False(t, pts[6].Discontinuous)

	s, err := skeleton.Build(a)
	require.NoError(t, err)
	meshes, err := mesh.Build(a, s, mathutil.Vec2{0.125, 0.125})
	require.NoError(t, err)
	assert.Len(t, meshes, 3)
}

func TestRecipeCurves(t *testing.T) {
	r := Recipe{Blend: []Part{
		{Template: "chicken", Curve: "decreasing"},
		{Template: "fox", Curve: "increasing"},
	}}
	a, err := r.Animal()
	require.NoError(t, err)
	require.Len(t, a.Body.Points, 8)
	assert.Len(t, a.Body.Points[3].Limbs, 2)
	assert.Equal(t, body.Single(1), a.Body.Points[7].Textures)
}

func TestRecipeSingle(t *testing.T) {
	a, err := Recipe{Template: "fox"}.Animal()
	require.NoError(t, err)
	assert.Len(t, a.Body.Points, 8)
}

func TestRecipeErrors(t *testing.T) {
	_, err := Recipe{}.Animal()
	assert.Error(t, err)

	_, err = Recipe{Template: "fox", Blend: []Part{{Template: "fox"}}}.Animal()
	assert.Error(t, err)

	_, err = Recipe{Blend: []Part{{Template: "fox", Curve: "sine"}}}.Animal()
	assert.Error(t, err)

	_, err = Recipe{Blend: []Part{{Template: "fox", Gradient: []float64{0, 0}}}}.Animal()
	assert.Error(t, err)
}

func TestPartPadsGradient(t *testing.T) {
	g, err := Part{Template: "fox", Gradient: []float64{1, 0.5}, Length: 4}.gradient(8)
	require.NoError(t, err)
	assert.Equal(t, body.Gradient{1, 0.5, 0, 0}, g)
}
