package body

// Gradient is a per-segment weight curve aligned by index with a body's points.
// Indices past its end weigh 0.
type Gradient []float64

// At returns the weight at i, 0 past the end.
func (g Gradient) At(i int) float64 {
	if i < 0 || i >= len(g) {
		return 0
	}
	return g[i]
}

// DecreasingLinear returns n weights falling from 1 to 0.
func DecreasingLinear(n int) Gradient {
	if n <= 1 {
		return Flat(n)
	}
	g := make(Gradient, n)
	for i := range g {
		g[i] = float64(n-1-i) / float64(n-1)
	}
	return g
}

// IncreasingLinear returns n weights rising from 0 to 1; it complements
// DecreasingLinear so the two always sum to 1.
func IncreasingLinear(n int) Gradient {
	if n <= 1 {
		return Flat(n)
	}
	g := make(Gradient, n)
	for i := range g {
		g[i] = float64(i) / float64(n-1)
	}
	return g
}

// FillZeroesTill returns a copy of g padded with zeros up to length n.
func (g Gradient) FillZeroesTill(n int) Gradient {
	out := make(Gradient, max(n, len(g)))
	copy(out, g)
	return out
}

// StartWith returns a copy of g whose leading weights are replaced by vals.
func (g Gradient) StartWith(vals ...float64) Gradient {
	g = g.FillZeroesTill(len(vals))
	copy(g, vals)
	return g
}

// Flat returns n weights of 1.
func Flat(n int) Gradient {
	g := make(Gradient, n)
	for i := range g {
		g[i] = 1
	}
	return g
}
