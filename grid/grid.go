// package grid evaluates an unnormalized two-dimensional posterior density
// on a rectangular grid and normalizes it by numerical quadrature. It exists
// for visualization and for validating sampled chains against a brute-force
// ground truth; the sampler itself never consults it.
package grid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"

	"bayesfit"
)

var (
	// ErrBadRange is returned for an empty or inverted parameter range, or a
	// grid with fewer than two points per axis.
	ErrBadRange = errors.New("grid: invalid parameter range")

	// ErrVanishing is returned when the density is zero everywhere on the
	// grid, so no normalization exists.
	ErrVanishing = errors.New("grid: density vanishes on the whole grid")

	// ErrNonFinite is returned when the density is infinite somewhere on
	// the grid, so the quadrature is undefined.
	ErrNonFinite = errors.New("grid: density is not finite on the grid")
)

// Range is a closed interval of parameter values.
type Range struct {
	Min, Max float64
}

// Grid holds a normalized posterior density tabulated on a rectangular grid.
// It implements plotter.GridXYZ so it can be rendered directly as a heat map.
type Grid struct {
	w0, w1 []float64
	z      *mat.Dense // z.At(i, j) is the density at (w0[i], w1[j])
	norm   float64
}

// Posterior evaluates target on an n0 × n1 grid spanning r0 × r1 and
// normalizes it so that it integrates to one over the grid, using nested
// trapezoidal quadrature. The density is exponentiated relative to its
// maximum over the grid, so very negative log-densities do not underflow the
// normalization.
func Posterior(target bayesfit.LogProber, r0, r1 Range, n0, n1 int) (*Grid, error) {
	if r0.Min >= r0.Max || r1.Min >= r1.Max || n0 < 2 || n1 < 2 {
		return nil, ErrBadRange
	}
	w0 := floats.Span(make([]float64, n0), r0.Min, r0.Max)
	w1 := floats.Span(make([]float64, n1), r1.Min, r1.Max)

	z := mat.NewDense(n0, n1, nil)
	max := math.Inf(-1)
	w := make([]float64, 2)
	for i := 0; i < n0; i++ {
		for j := 0; j < n1; j++ {
			w[0], w[1] = w0[i], w1[j]
			lp := target.LogProb(w)
			if math.IsNaN(lp) {
				lp = math.Inf(-1)
			}
			z.Set(i, j, lp)
			if lp > max {
				max = lp
			}
		}
	}
	if math.IsInf(max, -1) {
		return nil, ErrVanishing
	}
	if math.IsInf(max, 1) {
		return nil, ErrNonFinite
	}
	for i := 0; i < n0; i++ {
		row := z.RawRowView(i)
		for j := range row {
			row[j] = math.Exp(row[j] - max)
		}
	}

	// Integrate out w1 per row, then w0.
	rowInt := make([]float64, n0)
	for i := 0; i < n0; i++ {
		rowInt[i] = integrate.Trapezoidal(w1, z.RawRowView(i))
	}
	total := integrate.Trapezoidal(w0, rowInt)
	if total <= 0 || math.IsNaN(total) {
		return nil, ErrVanishing
	}
	z.Scale(1/total, z)

	return &Grid{w0: w0, w1: w1, z: z, norm: total * math.Exp(max)}, nil
}

// Norm returns the normalizing constant of the unnormalized density over the
// grid, an estimate of the model evidence when the grid covers the posterior
// mass.
func (g *Grid) Norm() float64 {
	return g.norm
}

// Axis returns the grid points along dimension d (0 or 1). The returned
// slice must not be modified.
func (g *Grid) Axis(d int) []float64 {
	switch d {
	case 0:
		return g.w0
	case 1:
		return g.w1
	}
	panic("grid: dimension out of range")
}

// At returns the normalized density at grid point (i, j).
func (g *Grid) At(i, j int) float64 {
	return g.z.At(i, j)
}

// Marginal integrates out the other dimension and returns the normalized
// one-dimensional marginal density along dimension d, one value per grid
// point of Axis(d).
func (g *Grid) Marginal(d int) []float64 {
	switch d {
	case 0:
		m := make([]float64, len(g.w0))
		for i := range m {
			m[i] = integrate.Trapezoidal(g.w1, g.z.RawRowView(i))
		}
		return m
	case 1:
		m := make([]float64, len(g.w1))
		col := make([]float64, len(g.w0))
		for j := range m {
			mat.Col(col, j, g.z)
			m[j] = integrate.Trapezoidal(g.w0, col)
		}
		return m
	}
	panic("grid: dimension out of range")
}

// MarginalMean returns the mean of the marginal density along dimension d.
func (g *Grid) MarginalMean(d int) float64 {
	axis := g.Axis(d)
	m := g.Marginal(d)
	xm := make([]float64, len(m))
	for i := range xm {
		xm[i] = axis[i] * m[i]
	}
	return integrate.Trapezoidal(axis, xm)
}

// Dims, X, Y and Z implement plotter.GridXYZ: the first grid dimension maps
// to the plot's x axis and the second to its y axis.

func (g *Grid) Dims() (c, r int) { return len(g.w0), len(g.w1) }

func (g *Grid) X(c int) float64 { return g.w0[c] }

func (g *Grid) Y(r int) float64 { return g.w1[r] }

func (g *Grid) Z(c, r int) float64 { return g.z.At(c, r) }
