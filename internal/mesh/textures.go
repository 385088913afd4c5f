package mesh

import "animal-rig/internal/body"

// matchTextures aligns the texture slots of two adjacent points by id so both
// ends of a segment blend the same pair of atlas rows. A texture present on
// only one end is faded in from weight 0 on the other.
func matchTextures(first, second body.Textures) (near, far []body.TextureSlot, err error) {
	switch {
	case len(first) == 1 && len(second) == 1:
		a, b := first[0], second[0]
		if a.Index != b.Index {
			return nil, nil, ErrTextureMismatch
		}
		return []body.TextureSlot{a}, []body.TextureSlot{b}, nil

	case len(first) == 1 && len(second) == 2:
		a, b, c := first[0], second[0], second[1]
		switch a.Index {
		case b.Index:
			return []body.TextureSlot{a, {Index: c.Index}}, []body.TextureSlot{b, c}, nil
		case c.Index:
			return []body.TextureSlot{{Index: b.Index}, a}, []body.TextureSlot{b, c}, nil
		}

	case len(first) == 2 && len(second) == 1:
		a, b, c := first[0], first[1], second[0]
		switch c.Index {
		case a.Index:
			return []body.TextureSlot{a, b}, []body.TextureSlot{c, {Index: b.Index}}, nil
		case b.Index:
			return []body.TextureSlot{a, b}, []body.TextureSlot{{Index: a.Index}, c}, nil
		}

	case len(first) == 2 && len(second) == 2:
		a, b, c, d := first[0], first[1], second[0], second[1]
		if a.Index == c.Index && b.Index == d.Index {
			return []body.TextureSlot{a, b}, []body.TextureSlot{c, d}, nil
		}
		if a.Index == d.Index && b.Index == c.Index {
			return []body.TextureSlot{b, a}, []body.TextureSlot{c, d}, nil
		}
	}
	return nil, nil, ErrTextureMismatch
}
