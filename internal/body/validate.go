package body

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("body: invalid body tree")

// Validate checks the structural invariants the builders rely on: every limb
// is named uniquely across the tree (bone names derive from limb names), has
// at least one point, and every point carries one or two distinct textures
// with finite, non-negative weights.
func (a Animal) Validate() error {
	var err error
	seen := make(map[string]bool)
	Walk(a, func(v Visit) {
		if err != nil {
			return
		}
		l := v.Limb
		switch {
		case l.Name == "":
			err = fmt.Errorf("%w: limb #%d has no name", ErrInvalid, v.Index)
		case seen[l.Name]:
			err = fmt.Errorf("%w: duplicate limb name %q", ErrInvalid, l.Name)
		case len(l.Points) == 0:
			err = fmt.Errorf("%w: limb %q has no points", ErrInvalid, l.Name)
		}
		if err != nil {
			return
		}
		seen[l.Name] = true
		for i, p := range l.Points {
			if e := p.validate(); e != nil {
				err = fmt.Errorf("%w: %s_%d: %v", ErrInvalid, l.Name, i, e)
				return
			}
		}
	})
	return err
}

func (p BodyPoint) validate() error {
	if !finite(p.Dir[0]) || !finite(p.Dir[1]) || !finite(p.Size) {
		return errors.New("non-finite geometry")
	}
	if len(p.Textures) == 0 || len(p.Textures) > MaxTextures {
		return fmt.Errorf("%d textures, want 1..%d", len(p.Textures), MaxTextures)
	}
	if len(p.Textures) == 2 && p.Textures[0].Index == p.Textures[1].Index {
		return fmt.Errorf("texture %d listed twice", p.Textures[0].Index)
	}
	for _, t := range p.Textures {
		if t.Index < 0 {
			return fmt.Errorf("negative texture index %d", t.Index)
		}
		if !finite(t.Weight) || t.Weight < 0 {
			return fmt.Errorf("bad texture weight %v", t.Weight)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
