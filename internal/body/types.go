package body

import "animal-rig/internal/mathutil"

// RootLimbName is the name of the limb every Animal is rooted at.
const RootLimbName = "spine"

// MaxTextures is the number of texture slots a point can blend.
const MaxTextures = 2

// TextureSlot references one cell row of the texture atlas with a blend weight.
type TextureSlot struct {
	Index  int     `yaml:"index"`
	Weight float64 `yaml:"weight"`
}

// Textures holds up to MaxTextures slots. Weights need not sum to 1.
type Textures []TextureSlot

// BodyPoint is one cross-section of a limb.
type BodyPoint struct {
	Dir           mathutil.Vec2 `yaml:"dir"` // offset to the next point
	Size          float64       `yaml:"size"`
	Textures      Textures      `yaml:"textures"`
	Discontinuous bool          `yaml:"discontinuous,omitempty"` // no mitering against the previous direction
	Limbs         []Limb        `yaml:"limbs,omitempty"`
}

// Limb is a named chain of body points. Displacement is applied where the limb
// attaches to its parent point; z is a depth offset.
type Limb struct {
	Name                string        `yaml:"name"`
	Displacement        mathutil.Vec3 `yaml:"displacement"`
	TextureDisplacement int           `yaml:"texture_displacement"`
	Points              []BodyPoint   `yaml:"points"`
}

// Animal wraps the root "spine" limb.
type Animal struct {
	Body Limb
}

// NewAnimal roots points in a spine limb with zero displacement.
func NewAnimal(points []BodyPoint) Animal {
	return Animal{Body: Limb{Name: RootLimbName, Points: points}}
}

// Single returns a one-texture list.
func Single(index int) Textures {
	return Textures{{Index: index, Weight: 1}}
}

// Contains reports whether any slot references index.
func (t Textures) Contains(index int) bool {
	for _, s := range t {
		if s.Index == index {
			return true
		}
	}
	return false
}

// Sum returns the total weight of all slots.
func (t Textures) Sum() float64 {
	var sum float64
	for _, s := range t {
		sum += s.Weight
	}
	return sum
}

// SegmentCount returns the number of points across the whole tree.
func (a Animal) SegmentCount() int {
	n := 0
	Walk(a, func(v Visit) { n += len(v.Limb.Points) })
	return n
}
