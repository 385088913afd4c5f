// Package trajectory smooths discrete target updates into per-frame target
// positions for the IK solver.
package trajectory

import (
	"fmt"
	"strings"

	"animal-rig/internal/mathutil"
)

// Kind selects the interpolation policy.
type Kind int

const (
	// Linear moves in a straight line from the previous to the new target.
	Linear Kind = iota
	// Parabolic lifts the path into an arc bulging upward off the straight
	// line, for stepping feet.
	Parabolic
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Parabolic:
		return "parabolic"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a config string onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "parabolic", "arc":
		return Parabolic, nil
	}
	return 0, fmt.Errorf("trajectory: unknown kind %q", s)
}

// Params configures a trajectory. For Parabolic, Duration is the arc
// duration and ArcHeightSlope the slope of the arc where it leaves the
// straight line: the peak height is ArcHeightSlope × distance / 4.
type Params struct {
	Duration       float64
	ArcHeightSlope float64
}

// Trajectory is the per-limb target state machine.
type Trajectory struct {
	kind     Kind
	params   Params
	previous mathutil.Vec2
	current  mathutil.Vec2
	elapsed  float64
}

// New creates a trajectory resting at start.
func New(kind Kind, params Params, start mathutil.Vec2) *Trajectory {
	return &Trajectory{
		kind:     kind,
		params:   params,
		previous: start,
		current:  start,
		elapsed:  params.Duration,
	}
}

// Update retargets the trajectory. The path restarts from the position the
// trajectory currently reports, so retargeting mid-flight does not jump.
func (t *Trajectory) Update(target mathutil.Vec2) {
	t.previous = t.Value()
	t.current = target
	t.elapsed = 0
}

// Advance moves the trajectory forward by dt seconds.
func (t *Trajectory) Advance(dt float64) {
	t.elapsed += dt
}

// Target returns the most recent target passed to Update.
func (t *Trajectory) Target() mathutil.Vec2 {
	return t.current
}

// Done reports whether the trajectory has arrived at its target.
func (t *Trajectory) Done() bool {
	return t.progress() >= 1
}

// Value returns the interpolated target for the current elapsed time.
func (t *Trajectory) Value() mathutil.Vec2 {
	s := t.progress()
	if s >= 1 {
		return t.current
	}
	p := mathutil.Lerp2(t.previous, t.current, s)
	if t.kind != Parabolic {
		return p
	}

	chord := t.current.Sub(t.previous)
	dist := chord.Len()
	if dist == 0 {
		return p
	}
	up := mathutil.Vec2{-chord[1], chord[0]}.Mul(1 / dist)
	if up[1] < 0 {
		up = up.Mul(-1)
	}
	return p.Add(up.Mul(t.params.ArcHeightSlope * dist * s * (1 - s)))
}

func (t *Trajectory) progress() float64 {
	if t.params.Duration <= 0 {
		return 1
	}
	return t.elapsed / t.params.Duration
}
