package rig

import "animal-rig/internal/mathutil"

// Gait plants feet for a moving rig. Each IK limb keeps a planted target
// until the body drifts too far from it or the last solve missed it; the
// foot is then re-planted a stride ahead of its rest position along the
// direction of travel.
type Gait struct {
	Stride    float64
	Threshold float64

	planted map[string]mathutil.Vec2
	last    mathutil.Vec2
	started bool
}

// NewGait creates a planner with the given stride and re-plant distance.
func NewGait(stride, threshold float64) *Gait {
	return &Gait{
		Stride:    stride,
		Threshold: threshold,
		planted:   make(map[string]mathutil.Vec2),
	}
}

// Plan returns the targets to pass to Rig.Step. reached is the result of the
// previous Step, nil on the first frame.
func (g *Gait) Plan(r *Rig, reached map[string]bool) map[string]mathutil.Vec2 {
	var heading mathutil.Vec2
	if g.started {
		heading = mathutil.Normalize2(r.Position.Sub(g.last))
	}
	g.last = r.Position
	g.started = true

	out := make(map[string]mathutil.Vec2, len(r.limbs))
	for _, l := range r.limbs {
		home := l.restTip.Add(r.Position)
		p, ok := g.planted[l.name]
		switch {
		case !ok:
			p = home
		case p.Sub(home).Len() > g.Threshold:
			p = home.Add(heading.Mul(g.Stride))
		case reached != nil && !reached[l.name]:
			p = home.Add(heading.Mul(g.Stride))
		}
		g.planted[l.name] = p
		out[l.name] = p
	}
	return out
}
