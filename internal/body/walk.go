package body

// Attachment locates the parent point a limb sprouts from.
type Attachment struct {
	Limb  int // index into the visit order
	Point int
}

// Visit is one limb as seen by Walk.
type Visit struct {
	Index  int // position in the visit order
	Limb   *Limb
	Parent *Attachment // nil for the root limb
}

// Walk visits every limb in pre-order: a limb is visited before any of its
// children; children are visited in point order, then declaration order.
// Visit indices are dense and a parent's index is always lower than its
// children's, so callers can resolve parents through an arena.
func Walk(a Animal, fn func(Visit)) {
	type frame struct {
		limb   *Limb
		parent *Attachment
	}
	stack := []frame{{limb: &a.Body}}
	next := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := next
		next++
		fn(Visit{Index: idx, Limb: f.limb, Parent: f.parent})

		// Push in reverse so the first child pops first.
		for pi := len(f.limb.Points) - 1; pi >= 0; pi-- {
			p := &f.limb.Points[pi]
			for ci := len(p.Limbs) - 1; ci >= 0; ci-- {
				stack = append(stack, frame{
					limb:   &p.Limbs[ci],
					parent: &Attachment{Limb: idx, Point: pi},
				})
			}
		}
	}
}
