package body

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-rig/internal/mathutil"
)

func point(dx, dy float64, limbs ...Limb) BodyPoint {
	return BodyPoint{Dir: mathutil.Vec2{dx, dy}, Size: 1, Textures: Single(0), Limbs: limbs}
}

func limb(name string, points ...BodyPoint) Limb {
	return Limb{Name: name, Points: points}
}

func sampleAnimal() Animal {
	tail := limb("tail", point(1, 0))
	leg := limb("leg", point(0, -1), point(0, -1, limb("toe", point(1, 0))))
	arm := limb("arm", point(0, 1))
	return NewAnimal([]BodyPoint{
		point(1, 0, leg, arm),
		point(1, 0),
		point(1, 0, tail),
	})
}

func TestWalkIsPreOrder(t *testing.T) {
	var names []string
	parents := map[string]*Attachment{}
	Walk(sampleAnimal(), func(v Visit) {
		require.Equal(t, len(names), v.Index)
		names = append(names, v.Limb.Name)
		parents[v.Limb.Name] = v.Parent
	})

	assert.Equal(t, []string{"spine", "leg", "toe", "arm", "tail"}, names)
	assert.Nil(t, parents["spine"])
	assert.Equal(t, &Attachment{Limb: 0, Point: 0}, parents["leg"])
	assert.Equal(t, &Attachment{Limb: 1, Point: 1}, parents["toe"])
	assert.Equal(t, &Attachment{Limb: 0, Point: 0}, parents["arm"])
	assert.Equal(t, &Attachment{Limb: 0, Point: 2}, parents["tail"])
}

func TestSegmentCount(t *testing.T) {
	assert.Equal(t, 8, sampleAnimal().SegmentCount())
}

func TestValidate(t *testing.T) {
	require.NoError(t, sampleAnimal().Validate())

	tests := []struct {
		name   string
		mutate func(a *Animal)
	}{
		{"duplicate limb", func(a *Animal) { a.Body.Points[1].Limbs = []Limb{limb("leg", point(1, 0))} }},
		{"unnamed limb", func(a *Animal) { a.Body.Points[1].Limbs = []Limb{limb("", point(1, 0))} }},
		{"empty limb", func(a *Animal) { a.Body.Points[1].Limbs = []Limb{limb("fin")} }},
		{"no textures", func(a *Animal) { a.Body.Points[1].Textures = nil }},
		{"three textures", func(a *Animal) {
			a.Body.Points[1].Textures = Textures{{0, 1}, {1, 1}, {2, 1}}
		}},
		{"repeated texture", func(a *Animal) { a.Body.Points[1].Textures = Textures{{3, 1}, {3, 1}} }},
		{"negative weight", func(a *Animal) { a.Body.Points[1].Textures = Textures{{0, -1}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sampleAnimal()
			tt.mutate(&a)
			err := a.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := sampleAnimal()
	c, err := a.Clone()
	require.NoError(t, err)
	require.Equal(t, a.SegmentCount(), c.SegmentCount())
	require.Equal(t, a.Body.Points[0].Limbs[1].Name, c.Body.Points[0].Limbs[1].Name)

	c.Body.Points[0].Limbs[0].Points[0].Size = 42
	c.Body.Points[0].Textures[0].Index = 7
	assert.Equal(t, 1.0, a.Body.Points[0].Limbs[0].Points[0].Size)
	assert.Equal(t, 0, a.Body.Points[0].Textures[0].Index)
}

func TestGradients(t *testing.T) {
	assert.Equal(t, Gradient{1, 0.5, 0}, DecreasingLinear(3))
	assert.Equal(t, Gradient{0, 0.5, 1}, IncreasingLinear(3))
	assert.Equal(t, Gradient{1}, DecreasingLinear(1))

	g := Gradient{0.5}.FillZeroesTill(3)
	assert.Equal(t, Gradient{0.5, 0, 0}, g)
	assert.Equal(t, Gradient{1, 1, 0}, g.StartWith(1, 1))
	assert.Equal(t, Gradient{0.5, 0, 0}, g, "StartWith must not modify the receiver")

	assert.Equal(t, 0.0, g.At(10))
	assert.Equal(t, 0.0, g.At(-1))
}
