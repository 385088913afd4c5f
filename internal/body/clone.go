package body

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Clone returns a deep copy of the limb, including all descendant limbs.
func (l Limb) Clone() (Limb, error) {
	var out Limb
	if err := deepcopy.Copy(&out, &l); err != nil {
		return Limb{}, fmt.Errorf("body: clone limb %q: %w", l.Name, err)
	}
	return out, nil
}

// CloneLimbs deep-copies a list of sibling limbs.
func CloneLimbs(limbs []Limb) ([]Limb, error) {
	if len(limbs) == 0 {
		return nil, nil
	}
	out := make([]Limb, len(limbs))
	for i, l := range limbs {
		c, err := l.Clone()
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Clone returns a deep copy of the animal.
func (a Animal) Clone() (Animal, error) {
	body, err := a.Body.Clone()
	if err != nil {
		return Animal{}, err
	}
	return Animal{Body: body}, nil
}
