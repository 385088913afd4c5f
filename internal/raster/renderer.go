// Package raster is a small software renderer for posed animal meshes.
package raster

import (
	"image"
	"math"

	"animal-rig/internal/mathutil"
	"animal-rig/internal/mesh"
)

// Options controls framing of a preview render.
type Options struct {
	Size        int // output edge in pixels before supersampling
	Supersample int
	Margin      int // pixels of padding at output scale
	Pitch, Yaw  float64
}

// Render draws meshes posed by skin (one matrix per bone, as returned by
// Skeleton.SkinMatrices) into a square image of Size × Supersample pixels.
// The model is fit to the frame. atlas may be nil.
func Render(meshes []mesh.Mesh, skin []mathutil.Mat4, atlas *image.NRGBA, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	renderSize := opts.Size * ss
	fb := NewFrameBuffer(renderSize, renderSize)
	if renderSize <= 0 {
		return fb.Image()
	}

	view := mathutil.ViewMatrix(opts.Pitch, opts.Yaw)
	posed := make([][]mathutil.Vec3, len(meshes))
	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := range meshes {
		verts := SkinVertices(&meshes[i], skin)
		for j, v := range verts {
			v = view.Mul3x1(v)
			verts[j] = v
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], v[k])
				hi[k] = math.Max(hi[k], v[k])
			}
		}
		posed[i] = verts
	}
	if math.IsInf(lo[0], 1) {
		return fb.Image()
	}

	span := math.Max(math.Max(hi[0]-lo[0], hi[1]-lo[1]), 0.001)
	margin := opts.Margin * ss
	scale := float64(renderSize-2*margin) / span
	center := hi.Add(lo).Mul(0.5)
	half := float64(renderSize) / 2
	light := DefaultLight()

	for i := range meshes {
		m := &meshes[i]
		verts := posed[i]
		for _, tri := range m.Tris {
			var pv [3]vertex
			for k, idx := range tri {
				p := verts[idx]
				pv[k] = vertex{
					x:     half + (p[0]-center[0])*scale,
					y:     half - (p[1]-center[1])*scale,
					z:     p[2],
					uv0:   m.UVs[idx],
					uv1:   m.SecondUV(idx),
					alpha: m.BlendAlpha(idx),
				}
			}
			a, b, c := verts[tri[0]], verts[tri[1]], verts[tri[2]]
			normal := b.Sub(a).Cross(c.Sub(a))
			if normal.Len() < 1e-12 {
				continue
			}
			rasterizeTriangle(fb, pv, atlas, light.Shade(normal.Normalize()), &light)
		}
	}
	return fb.Image()
}

// SkinVertices applies linear blend skinning to a mesh's rest vertices.
// Bones without a matrix are left untransformed.
func SkinVertices(m *mesh.Mesh, skin []mathutil.Mat4) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(m.Verts))
	for i, v := range m.Verts {
		var p mathutil.Vec3
		var total float64
		for k := 0; k < mesh.BonesPerVertex; k++ {
			w := m.Weights[i][k]
			if w == 0 {
				continue
			}
			b := m.Bones[i][k]
			q := v
			if b >= 0 && b < len(skin) {
				q = mathutil.MulPoint(skin[b], v)
			}
			p = p.Add(q.Mul(w))
			total += w
		}
		if total == 0 {
			p = v
		} else if total != 1 {
			p = p.Mul(1 / total)
		}
		out[i] = p
	}
	return out
}
