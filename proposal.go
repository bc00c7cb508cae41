package bayesfit

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// A Proposer generates candidate states conditioned on the current state.
// The proposal density must be symmetric in (cur, dst); Sampler omits the
// proposal correction term from its acceptance ratio on that assumption.
type Proposer interface {
	// Propose stores a candidate state drawn around cur into dst. Each call
	// must use fresh random draws.
	Propose(dst, cur []float64)
	// Dim returns the length of the state vectors.
	Dim() int
}

// RandomWalk proposes from a multivariate Gaussian centered at the current
// state with a fixed covariance,
//
//	w* = cur + L·z, z ~ N(0, I),
//
// where L is the Cholesky factor of the covariance. The factorization is
// computed once at construction and reused on every call.
type RandomWalk struct {
	normal *distmv.Normal
	dim    int
}

// NewRandomWalk returns a Gaussian random-walk proposal with the given
// covariance. It returns ErrNotPositiveDefinite if sigma has no Cholesky
// decomposition. src is the source for the proposal's normal draws; keep it
// separate from the sampler's accept/reject source. A nil src uses the
// global random source.
func NewRandomWalk(sigma mat.Symmetric, src rand.Source) (*RandomWalk, error) {
	dim := sigma.SymmetricDim()
	normal, ok := distmv.NewNormal(make([]float64, dim), sigma, src)
	if !ok {
		return nil, ErrNotPositiveDefinite
	}
	return &RandomWalk{normal: normal, dim: dim}, nil
}

// Dim returns the dimension of the proposal.
func (rw *RandomWalk) Dim() int {
	return rw.dim
}

// Propose draws a zero-mean Gaussian step and adds it to cur, storing the
// candidate in dst.
func (rw *RandomWalk) Propose(dst, cur []float64) {
	if len(dst) != rw.dim || len(cur) != rw.dim {
		panic(errLen)
	}
	rw.normal.Rand(dst)
	floats.Add(dst, cur)
}
