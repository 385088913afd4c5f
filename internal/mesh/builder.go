// Package mesh builds skinned tube meshes for every limb of a body tree.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"animal-rig/internal/body"
	"animal-rig/internal/mathutil"
	"animal-rig/internal/skeleton"
)

// ErrTextureMismatch means two adjacent points share no texture id, which no
// valid template or blend produces.
var ErrTextureMismatch = errors.New("mesh: adjacent points share no texture")

// Quad corner UVs in emission order, then the center.
var (
	cornerUV = [4]mathutil.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	centerUV = mathutil.Vec2{0.5, 0.5}
)

// Build emits one mesh per limb in the skeleton's pre-order. Vertices are in
// model space: a limb starts at its parent's attach point plus its own
// displacement, and its z is the displacement's depth. blockSize is the UV
// size of one texture atlas cell.
func Build(a body.Animal, s *skeleton.Skeleton, blockSize mathutil.Vec2) ([]Mesh, error) {
	var (
		meshes []Mesh
		points [][]mathutil.Vec2 // per visit: model-space position of each point
		err    error
	)
	body.Walk(a, func(v body.Visit) {
		if err != nil {
			return
		}
		limb := v.Limb

		origin := limb.Displacement.Vec2()
		if v.Parent != nil {
			origin = origin.Add(points[v.Parent.Limb][v.Parent.Point])
		}
		cursor := origin
		pos := make([]mathutil.Vec2, len(limb.Points))
		for i, p := range limb.Points {
			pos[i] = cursor
			cursor = cursor.Add(p.Dir)
		}
		points = append(points, pos)

		var m Mesh
		m, err = buildLimb(limb, origin, s, blockSize)
		meshes = append(meshes, m)
	})
	if err != nil {
		return nil, err
	}
	return meshes, nil
}

func buildLimb(limb *body.Limb, origin mathutil.Vec2, s *skeleton.Skeleton, blockSize mathutil.Vec2) (Mesh, error) {
	m := Mesh{Limb: limb.Name}
	chain := s.Chain(limb.Name)
	if len(chain) != len(limb.Points) {
		return m, fmt.Errorf("mesh: limb %q has %d points but %d bones", limb.Name, len(limb.Points), len(chain))
	}
	if len(limb.Points) < 2 {
		return m, nil
	}

	depth := limb.Displacement[2]
	cursor := mathutil.Vec3{origin[0], origin[1], depth}
	lastDir := limb.Points[0].Dir

	for i := 0; i+1 < len(limb.Points); i++ {
		first, second := limb.Points[i], limb.Points[i+1]

		var nearOff mathutil.Vec2
		if first.Discontinuous {
			nearOff = miter(lastDir, first.Size)
		} else {
			nearOff = miter(average(first.Dir, lastDir), first.Size)
		}
		farOff := nearOff
		if !second.Discontinuous {
			farOff = miter(average(second.Dir, first.Dir), second.Size)
		}
		lastDir = first.Dir

		near, far, dir := mathutil.Planar(nearOff), mathutil.Planar(farOff), mathutil.Planar(first.Dir)
		corners := [4]mathutil.Vec3{
			cursor.Sub(near),
			cursor.Add(near),
			cursor.Add(far).Add(dir),
			cursor.Sub(far).Add(dir),
		}
		center := cursor.Add(dir.Mul(0.5))

		nearTex, farTex, err := matchTextures(first.Textures, second.Textures)
		if err != nil {
			return m, fmt.Errorf("%w: %s_%d/%s_%d", err, limb.Name, i, limb.Name, i+1)
		}

		firstBone, secondBone := chain[max(i-1, 0)], chain[i]
		column := i + limb.TextureDisplacement

		// Fan of four triangles around the center.
		for tri := 0; tri < 4; tri++ {
			next := (tri + 1) % 4
			verts := [3]mathutil.Vec3{corners[tri], corners[next], center}
			uvs := [3]mathutil.Vec2{cornerUV[tri], cornerUV[next], centerUV}

			base := len(m.Verts)
			for k := 0; k < 3; k++ {
				uv, color := shade(blockSize, column, nearTex, farTex, uvs[k], tri)
				bones, weights := skin(firstBone, secondBone, uvs[k][0])
				m.addVertex(verts[k], uv, color, bones, weights)
			}
			m.Tris = append(m.Tris, [3]int{base, base + 1, base + 2})
		}

		cursor = cursor.Add(dir)
	}
	return m, nil
}

// miter returns the cross-section half offset perpendicular to dir.
func miter(dir mathutil.Vec2, size float64) mathutil.Vec2 {
	return mathutil.Normalize2(mathutil.Tangent(dir)).Mul(size * 0.5)
}

func average(a, b mathutil.Vec2) mathutil.Vec2 {
	return a.Add(b).Mul(0.5)
}

// atlasUV maps a quad-local uv into atlas cell (column, row).
func atlasUV(blockSize mathutil.Vec2, column, row int, uv mathutil.Vec2) mathutil.Vec2 {
	return mathutil.Vec2{
		(float64(column) + uv[0]) * blockSize[0],
		(float64(row) + uv[1]) * blockSize[1],
	}
}

// shade computes a vertex's UV and color channels. Vertices on the near edge
// (u == 0) take blend weights from the near point, all others from the far one.
func shade(blockSize mathutil.Vec2, column int, nearTex, farTex []body.TextureSlot, uv mathutil.Vec2, tri int) (mathutil.Vec2, [4]float64) {
	primary := atlasUV(blockSize, column, nearTex[0].Index, uv)
	if len(nearTex) == 1 {
		return primary, [4]float64{0, 0, 1, float64(tri)}
	}
	secondary := atlasUV(blockSize, column, nearTex[1].Index, uv)
	weights := farTex
	if uv[0] == 0 {
		weights = nearTex
	}
	return primary, [4]float64{secondary[0], secondary[1], weights[0].Weight, float64(tri)}
}

// skin assigns bone influences by the vertex's position along the segment.
func skin(first, second int, u float64) ([BonesPerVertex]int, [BonesPerVertex]float64) {
	var (
		bones   [BonesPerVertex]int
		weights [BonesPerVertex]float64
	)
	switch {
	case u < 0.25:
		bones[0], weights[0] = first, 1
	case u > 0.75:
		bones[0], weights[0] = second, 1
	default:
		bones[0], weights[0] = first, 0.5
		bones[1], weights[1] = second, 0.5
	}
	return bones, weights
}

// Dimensions returns the half extents (z fixed to 1) and center of the
// bounding box of all mesh vertices, for sizing a collision box.
func Dimensions(meshes []Mesh) (size, center mathutil.Vec3) {
	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	n := 0
	for _, m := range meshes {
		for _, v := range m.Verts {
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], v[k])
				hi[k] = math.Max(hi[k], v[k])
			}
			n++
		}
	}
	if n == 0 {
		return mathutil.Vec3{0, 0, 1}, mathutil.Vec3{}
	}
	size = hi.Sub(lo).Mul(0.5)
	size[2] = 1
	return size, hi.Add(lo).Mul(0.5)
}
