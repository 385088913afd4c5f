package mesh

import "animal-rig/internal/mathutil"

// BonesPerVertex is the number of bone influence slots per vertex; unused
// slots reference bone 0 with weight 0.
const BonesPerVertex = 4

// Mesh holds the skinned tube geometry of one limb as a triangle list.
//
// A vertex blending two textures stores the first atlas UV in UVs and the
// second in Colors[i][0:2], with the first texture's blend weight in
// Colors[i][2]. Single-texture vertices carry weight 1 there. Colors[i][3] is
// the vertex's triangle index within its quad.
type Mesh struct {
	Limb    string
	Verts   []mathutil.Vec3
	UVs     []mathutil.Vec2
	Colors  [][4]float64
	Bones   [][BonesPerVertex]int
	Weights [][BonesPerVertex]float64
	Tris    [][3]int
}

// SecondUV returns the vertex's second atlas UV.
func (m *Mesh) SecondUV(i int) mathutil.Vec2 {
	return mathutil.Vec2{m.Colors[i][0], m.Colors[i][1]}
}

// BlendAlpha returns the weight of the vertex's first texture.
func (m *Mesh) BlendAlpha(i int) float64 {
	return m.Colors[i][2]
}

func (m *Mesh) addVertex(pos mathutil.Vec3, uv mathutil.Vec2, color [4]float64, bones [BonesPerVertex]int, weights [BonesPerVertex]float64) {
	m.Verts = append(m.Verts, pos)
	m.UVs = append(m.UVs, uv)
	m.Colors = append(m.Colors, color)
	m.Bones = append(m.Bones, bones)
	m.Weights = append(m.Weights, weights)
}
