// Package rig ties the builders, the IK solver and the target trajectories
// into one spawned animal: Initialize once, then Step every frame.
package rig

import (
	"errors"
	"fmt"
	"log/slog"

	"animal-rig/internal/body"
	"animal-rig/internal/ik"
	"animal-rig/internal/mathutil"
	"animal-rig/internal/mesh"
	"animal-rig/internal/skeleton"
	"animal-rig/internal/trajectory"
)

// ErrUnknownLimb is returned when an IK limb is missing or too short to bend.
var ErrUnknownLimb = errors.New("rig: unknown IK limb")

// Config describes one spawn.
type Config struct {
	Animal           body.Animal
	TextureBlockSize mathutil.Vec2
	Iterations       int
	Trajectory       trajectory.Kind
	TrajectoryParams trajectory.Params
	// Limbs lists the limbs driven by IK. Empty means every non-spine limb
	// with at least two bones.
	Limbs []string
}

// Rig is the state of one spawned animal. It is not safe for concurrent use.
type Rig struct {
	Animal   body.Animal
	Skeleton *skeleton.Skeleton
	Meshes   []mesh.Mesh

	// Size and Center come from the meshes' aggregate bounding box.
	Size   mathutil.Vec3
	Center mathutil.Vec3

	// Position is the rig's world offset. Step targets are world positions.
	Position mathutil.Vec2

	iterations int
	limbs      []*limbState
}

type limbState struct {
	name    string
	chain   []int
	offsets []mathutil.Vec2
	restTip mathutil.Vec2
	traj    *trajectory.Trajectory
	reached bool
}

// Initialize builds the skeleton and meshes for cfg.Animal and rests every
// IK limb's target at its tip. It produces no partial rig on error.
func Initialize(cfg Config) (*Rig, error) {
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("rig: negative iteration count %d", cfg.Iterations)
	}
	if cfg.TextureBlockSize[0] <= 0 || cfg.TextureBlockSize[1] <= 0 {
		return nil, fmt.Errorf("rig: texture block size must be positive, got %v", cfg.TextureBlockSize)
	}

	sk, err := skeleton.Build(cfg.Animal)
	if err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}
	meshes, err := mesh.Build(cfg.Animal, sk, cfg.TextureBlockSize)
	if err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}
	size, center := mesh.Dimensions(meshes)

	r := &Rig{
		Animal:     cfg.Animal,
		Skeleton:   sk,
		Meshes:     meshes,
		Size:       size,
		Center:     center,
		iterations: cfg.Iterations,
	}

	names := cfg.Limbs
	if len(names) == 0 {
		for _, name := range sk.Limbs() {
			if name != body.RootLimbName && len(sk.Chain(name)) >= 2 {
				names = append(names, name)
			}
		}
	}

	rests := sk.GlobalRests()
	for _, name := range names {
		chain := sk.Chain(name)
		if len(chain) < 2 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLimb, name)
		}
		offsets := make([]mathutil.Vec2, len(chain))
		for i, b := range chain {
			offsets[i] = sk.RestOffset(b)
		}
		tip := mathutil.Origin(rests[chain[len(chain)-1]]).Vec2()
		r.limbs = append(r.limbs, &limbState{
			name:    name,
			chain:   chain,
			offsets: offsets,
			restTip: tip,
			traj:    trajectory.New(cfg.Trajectory, cfg.TrajectoryParams, tip),
			reached: true,
		})
	}

	slog.Debug("rig initialized",
		"bones", len(sk.Bones),
		"meshes", len(meshes),
		"ik_limbs", names,
		"size", size,
	)
	return r, nil
}

// Step advances every IK limb by dt seconds. A limb listed in targets is
// retargeted first if the target moved. It returns whether each limb's tip
// reached its current trajectory point.
func (r *Rig) Step(dt float64, targets map[string]mathutil.Vec2) map[string]bool {
	reached := make(map[string]bool, len(r.limbs))
	for _, l := range r.limbs {
		if t, ok := targets[l.name]; ok && t != l.traj.Target() {
			l.traj.Update(t)
		}
		l.traj.Advance(dt)
		l.reached = r.solve(l, l.traj.Value().Sub(r.Position))
		reached[l.name] = l.reached
	}
	return reached
}

// solve bends one chain toward a model-space target. The chain root's
// parent may already be posed, so the target is brought into the parent's
// frame before solving.
func (r *Rig) solve(l *limbState, target mathutil.Vec2) bool {
	sk := r.Skeleton
	poses := sk.GlobalPoses()
	root := poses[l.chain[0]]

	var parentAngle float64
	if p := sk.Bones[l.chain[0]].Parent; p >= 0 {
		parentAngle = mathutil.AngleZ(poses[p])
	}
	local := mathutil.Rotate2(target.Sub(mathutil.Origin(root).Vec2()), -parentAngle)

	res, err := ik.Solve(l.offsets, local, r.iterations)
	if err != nil {
		// Chains are checked at Initialize.
		slog.Debug("ik solve failed", "limb", l.name, "err", err)
		return false
	}
	for i, rot := range res.Rotations {
		sk.SetPoseRotation(l.chain[i], rot)
	}
	return res.Reached
}

// Limbs returns the IK-driven limb names.
func (r *Rig) Limbs() []string {
	out := make([]string, len(r.limbs))
	for i, l := range r.limbs {
		out[i] = l.name
	}
	return out
}

// Target returns the limb's current trajectory point in world space.
func (r *Rig) Target(limb string) (mathutil.Vec2, bool) {
	if l := r.limb(limb); l != nil {
		return l.traj.Value(), true
	}
	return mathutil.Vec2{}, false
}

// Reached reports the outcome of the limb's last solve.
func (r *Rig) Reached(limb string) bool {
	if l := r.limb(limb); l != nil {
		return l.reached
	}
	return false
}

// Tip returns the limb's posed tip in world space.
func (r *Rig) Tip(limb string) (mathutil.Vec2, bool) {
	l := r.limb(limb)
	if l == nil {
		return mathutil.Vec2{}, false
	}
	poses := r.Skeleton.GlobalPoses()
	return mathutil.Origin(poses[l.chain[len(l.chain)-1]]).Vec2().Add(r.Position), true
}

// RestTip returns the limb's rest-pose tip in world space.
func (r *Rig) RestTip(limb string) (mathutil.Vec2, bool) {
	if l := r.limb(limb); l != nil {
		return l.restTip.Add(r.Position), true
	}
	return mathutil.Vec2{}, false
}

func (r *Rig) limb(name string) *limbState {
	for _, l := range r.limbs {
		if l.name == name {
			return l
		}
	}
	return nil
}
