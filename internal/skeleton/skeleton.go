// Package skeleton derives a bone hierarchy from a body tree: one bone per
// body point, parented to the previous point of the same limb or to the
// attach-point bone of the parent limb.
package skeleton

import (
	"fmt"
	"math"

	"animal-rig/internal/body"
	"animal-rig/internal/mathutil"
)

// Bone holds rest-pose data and the current local pose of one bone.
type Bone struct {
	Name    string
	Limb    string
	Segment int
	Parent  int // -1 for the root bone

	// Rest is the bone's transform relative to its parent: a translation by
	// the previous point's direction (or the limb displacement for a limb's
	// first bone).
	Rest mathutil.Mat4
	// Pose is applied on top of Rest; identity in the rest pose.
	Pose mathutil.Mat4
}

// Skeleton is an arena of bones. Every bone's parent has a lower index.
type Skeleton struct {
	Bones  []Bone
	byName map[string]int
	chains map[string][]int
	limbs  []string
}

// BoneName formats the bone name for point i of a limb.
func BoneName(limb string, i int) string {
	return fmt.Sprintf("%s_%d", limb, i)
}

// Build walks the body tree in pre-order and emits its bones. A limb's bones
// are created in point order before any of its children, and child limbs
// resolve their parent bone through the arena rather than by name.
func Build(a body.Animal) (*Skeleton, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("skeleton: %w", err)
	}

	s := &Skeleton{
		Bones:  make([]Bone, 0, a.SegmentCount()),
		byName: make(map[string]int),
		chains: make(map[string][]int),
	}

	// First bone index of each limb, by visit index.
	var firstBone []int
	body.Walk(a, func(v body.Visit) {
		limb := v.Limb
		firstBone = append(firstBone, len(s.Bones))
		s.limbs = append(s.limbs, limb.Name)

		parent := -1
		if v.Parent != nil {
			parent = firstBone[v.Parent.Limb] + v.Parent.Point
		}

		lastDir := limb.Displacement.Vec2()
		chain := make([]int, 0, len(limb.Points))
		for i, p := range limb.Points {
			idx := len(s.Bones)
			name := BoneName(limb.Name, i)
			s.Bones = append(s.Bones, Bone{
				Name:    name,
				Limb:    limb.Name,
				Segment: i,
				Parent:  parent,
				Rest:    mathutil.Translation(mathutil.Planar(lastDir)),
				Pose:    mathutil.Mat4Ident(),
			})
			s.byName[name] = idx
			chain = append(chain, idx)
			parent = idx
			lastDir = p.Dir
		}
		s.chains[limb.Name] = chain
	})

	return s, nil
}

// Find returns the index of the named bone.
func (s *Skeleton) Find(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Chain returns the bone indices of a limb in point order, nil if unknown.
func (s *Skeleton) Chain(limb string) []int {
	return s.chains[limb]
}

// Limbs returns limb names in build order.
func (s *Skeleton) Limbs() []string {
	return s.limbs
}

// RestOffset returns the bone's rest translation in its parent's frame.
func (s *Skeleton) RestOffset(bone int) mathutil.Vec2 {
	return mathutil.Origin(s.Bones[bone].Rest).Vec2()
}

// SetPoseRotation sets the bone's local pose to a rotation about +Z.
func (s *Skeleton) SetPoseRotation(bone int, angle float64) {
	s.Bones[bone].Pose = mathutil.RotationZ(angle)
}

// ResetPose returns every bone to its rest pose.
func (s *Skeleton) ResetPose() {
	for i := range s.Bones {
		s.Bones[i].Pose = mathutil.Mat4Ident()
	}
}

// GlobalRests computes each bone's model-space rest transform.
func (s *Skeleton) GlobalRests() []mathutil.Mat4 {
	return s.accumulate(false)
}

// GlobalPoses computes each bone's model-space transform in the current pose.
func (s *Skeleton) GlobalPoses() []mathutil.Mat4 {
	return s.accumulate(true)
}

func (s *Skeleton) accumulate(posed bool) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(s.Bones))
	for i, b := range s.Bones {
		local := b.Rest
		if posed {
			local = local.Mul4(b.Pose)
		}
		if b.Parent >= 0 && b.Parent < i {
			worlds[i] = worlds[b.Parent].Mul4(local)
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// Extent returns the size and minimum corner of the XY bounding box of all
// posed bone origins.
func (s *Skeleton) Extent() (size, corner mathutil.Vec2) {
	if len(s.Bones) == 0 {
		return mathutil.Vec2{}, mathutil.Vec2{}
	}
	lo := mathutil.Vec2{math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, w := range s.GlobalPoses() {
		p := mathutil.Origin(w)
		for k := 0; k < 2; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return hi.Sub(lo), lo
}

// SkinMatrices returns, per bone, the transform taking a model-space rest
// vertex to its posed position: globalPose × inverse(globalRest).
func (s *Skeleton) SkinMatrices() []mathutil.Mat4 {
	rests := s.GlobalRests()
	poses := s.GlobalPoses()
	out := make([]mathutil.Mat4, len(s.Bones))
	for i := range out {
		out[i] = poses[i].Mul4(rests[i].Inv())
	}
	return out
}
