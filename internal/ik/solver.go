// Package ik bends a 2D bone chain toward a target with forward-and-backward
// reaching passes and converts the solved joints into local bone rotations.
package ik

import (
	"errors"
	"fmt"

	"animal-rig/internal/mathutil"
)

// ReachEpsilon is the squared distance under which the chain tip counts as
// having reached its target.
const ReachEpsilon = 0.01

// ErrDegenerateChain is returned for chains with fewer than two joints.
var ErrDegenerateChain = errors.New("ik: chain needs at least two joints")

// Result is the outcome of one solve.
type Result struct {
	// Joints are the solved joint positions; Joints[0] is the chain root at
	// the origin.
	Joints []mathutil.Vec2
	// Rotations holds one local rotation per segment (len(Joints)-1), each
	// relative to the rotation already inherited from earlier bones.
	Rotations []float64
	Reached   bool
}

// Solve runs exactly iterations passes over the chain.
//
// offsets are the bones' rest translations, each relative to the previous
// bone; offsets[0] positions the chain root and is ignored since the root is
// pinned at the origin. target is relative to the root. Segment lengths are
// preserved after every pass; a joint that collapses onto its neighbour is
// pushed back out along its rest direction.
func Solve(offsets []mathutil.Vec2, target mathutil.Vec2, iterations int) (Result, error) {
	n := len(offsets)
	if n < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrDegenerateChain, n)
	}
	if iterations < 0 {
		return Result{}, fmt.Errorf("ik: negative iteration count %d", iterations)
	}

	rest := make([]mathutil.Vec2, n)
	for i := 1; i < n; i++ {
		rest[i] = rest[i-1].Add(offsets[i])
	}
	lengths := make([]float64, n-1)
	for i := range lengths {
		lengths[i] = rest[i+1].Sub(rest[i]).Len()
	}

	joints := make([]mathutil.Vec2, n)
	copy(joints, rest)
	last := n - 1
	for it := 0; it < iterations; it++ {
		joints[last] = target
		for i := last - 1; i >= 0; i-- {
			joints[i] = reach(joints[i+1], joints[i], rest[i].Sub(rest[i+1]), lengths[i])
		}

		joints[0] = mathutil.Vec2{}
		for i := 1; i <= last; i++ {
			joints[i] = reach(joints[i-1], joints[i], rest[i].Sub(rest[i-1]), lengths[i-1])
		}
	}

	return Result{
		Joints:    joints,
		Rotations: Rotations(rest, joints),
		Reached:   joints[last].Sub(target).LenSqr() < ReachEpsilon,
	}, nil
}

// reach places p at distance length from anchor, keeping its direction from
// anchor (or restDir if p sits on anchor).
func reach(anchor, p, restDir mathutil.Vec2, length float64) mathutil.Vec2 {
	dir := mathutil.Normalize2(p.Sub(anchor))
	if dir == (mathutil.Vec2{}) {
		dir = mathutil.Normalize2(restDir)
	}
	return anchor.Add(dir.Mul(length))
}

// Rotations converts posed joints back into per-segment local rotations: the
// signed angle from each rest segment to its posed segment, minus the angle
// already accumulated by the segments before it.
func Rotations(rest, posed []mathutil.Vec2) []float64 {
	out := make([]float64, len(rest)-1)
	current := 0.0
	for i := range out {
		restDir := rest[i+1].Sub(rest[i])
		poseDir := posed[i+1].Sub(posed[i])
		angle := mathutil.WrapAngle(mathutil.Angle(poseDir) - mathutil.Angle(restDir))
		out[i] = mathutil.WrapAngle(angle - current)
		current = angle
	}
	return out
}
