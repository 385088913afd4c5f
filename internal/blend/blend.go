// Package blend combines several body trees into one hybrid along per-segment
// weight curves.
package blend

import (
	"errors"
	"fmt"
	"sort"

	"animal-rig/internal/body"
	"animal-rig/internal/mathutil"
)

var (
	// ErrNoInputs is returned when asked to blend zero animals.
	ErrNoInputs = errors.New("blend: no animals to blend")
	// ErrZeroWeight is returned when no input carries weight at some segment.
	ErrZeroWeight = errors.New("blend: zero total weight")
)

// Input pairs an animal with the weight curve it contributes along its spine.
type Input struct {
	Animal   body.Animal
	Gradient body.Gradient
}

// Animals blends the spines of inputs into a new animal.
//
// The result has as many spine points as the longest gradient. At index i
// every input that has a point there contributes its direction and size
// weighted by its gradient (0 past the gradient's end), and its textures
// scaled by the same weight. Among inputs with nonzero weight, a point is
// discontinuous if any of them is, and the child limbs are copied wholesale
// from the heaviest input that has any (first one wins a tie).
//
// Texture selection keeps the heaviest texture and picks a second one that
// stays compatible with the previous point's textures, so adjacent segments
// always share a texture id.
func Animals(inputs []Input) (body.Animal, error) {
	if len(inputs) == 0 {
		return body.Animal{}, ErrNoInputs
	}

	n := 0
	for _, in := range inputs {
		n = max(n, len(in.Gradient))
	}

	points := make([]body.BodyPoint, 0, n)
	for i := 0; i < n; i++ {
		var (
			dir       mathutil.Vec2
			size, sum float64
			disc      bool
			textures  []body.TextureSlot
			limbs     []body.Limb
			best      float64
		)
		for _, in := range inputs {
			pts := in.Animal.Body.Points
			if i >= len(pts) {
				continue
			}
			p := pts[i]
			w := in.Gradient.At(i)

			dir = dir.Add(p.Dir.Mul(w))
			size += p.Size * w
			sum += w
			for _, t := range p.Textures {
				textures = addTexture(textures, t.Index, t.Weight*w)
			}

			if w > 0 {
				disc = disc || p.Discontinuous
				if len(p.Limbs) > 0 && w > best {
					best = w
					limbs = p.Limbs
				}
			}
		}

		if sum == 0 {
			return body.Animal{}, fmt.Errorf("%w at segment %d", ErrZeroWeight, i)
		}
		if len(textures) == 0 {
			return body.Animal{}, fmt.Errorf("blend: no textures at segment %d", i)
		}

		children, err := body.CloneLimbs(limbs)
		if err != nil {
			return body.Animal{}, fmt.Errorf("blend: segment %d: %w", i, err)
		}

		var prev body.Textures
		if len(points) > 0 {
			prev = points[len(points)-1].Textures
		}

		points = append(points, body.BodyPoint{
			Dir:           dir.Mul(1 / sum),
			Size:          size / sum,
			Textures:      pickTextures(textures, prev),
			Discontinuous: disc,
			Limbs:         children,
		})
	}

	for i := range points {
		normalize(points[i].Textures)
	}
	return body.NewAnimal(points), nil
}

// addTexture merges weight into an existing entry for the same id.
func addTexture(ts []body.TextureSlot, index int, weight float64) []body.TextureSlot {
	for i := range ts {
		if ts[i].Index == index {
			ts[i].Weight += weight
			return ts
		}
	}
	return append(ts, body.TextureSlot{Index: index, Weight: weight})
}

// pickTextures selects up to two of the candidate textures. prev is nil for
// the first point.
//
// The heaviest candidate is always kept. If prev does not contain it, the
// second slot goes to the heaviest candidate that prev does contain (or stays
// empty). Otherwise the runner-up is kept when it cannot break the pairing
// with prev: prev holds a single texture, or prev also contains it.
func pickTextures(candidates []body.TextureSlot, prev body.Textures) body.Textures {
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Weight < candidates[b].Weight
	})
	last := len(candidates) - 1
	primary := candidates[last]
	rest := candidates[:last]

	out := body.Textures{primary}
	switch {
	case len(rest) == 0:
	case prev == nil:
		out = append(out, rest[len(rest)-1])
	case !prev.Contains(primary.Index):
		for j := len(rest) - 1; j >= 0; j-- {
			if prev.Contains(rest[j].Index) {
				out = append(out, rest[j])
				break
			}
		}
	default:
		runnerUp := rest[len(rest)-1]
		if len(prev) == 1 || prev.Contains(runnerUp.Index) {
			out = append(out, runnerUp)
		}
	}
	return out
}

// normalize rescales weights to sum to 1.
func normalize(ts body.Textures) {
	total := ts.Sum()
	if total <= 0 {
		ts[0].Weight = 1
		for i := 1; i < len(ts); i++ {
			ts[i].Weight = 0
		}
		return
	}
	for i := range ts {
		ts[i].Weight /= total
	}
}
