// package analyze summarizes finished sampling chains. Burn-in handling
// lives here, downstream of the sampler: a chain records every state it
// visited, and callers decide how much of its head to discard.
package analyze

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"bayesfit"
)

// Summary holds per-dimension moments of the post-burn-in states of a chain.
type Summary struct {
	// Mean and Std are the sample mean and standard deviation per parameter
	// dimension.
	Mean, Std []float64
	// AcceptanceRate is the fraction of proposals the chain accepted over
	// the whole run, burn-in included.
	AcceptanceRate float64
	// N is the number of states summarized.
	N int
}

// Summarize computes moments over the states of c with the first burn states
// discarded. It panics if burn is negative or leaves no states.
func Summarize(c *bayesfit.Chain, burn int) Summary {
	states := discard(c, burn)
	n, dim := states.Dims()
	s := Summary{
		Mean:           make([]float64, dim),
		Std:            make([]float64, dim),
		AcceptanceRate: c.AcceptanceRate(),
		N:              n,
	}
	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, states)
		s.Mean[j], s.Std[j] = stat.MeanStdDev(col, nil)
	}
	return s
}

// Covariance returns the sample covariance of the post-burn-in states.
func Covariance(c *bayesfit.Chain, burn int) *mat.SymDense {
	states := discard(c, burn)
	cov := mat.NewSymDense(c.Dim(), nil)
	stat.CovarianceMatrix(cov, states, nil)
	return cov
}

// Quantile returns the p-quantile of dimension d of the post-burn-in states.
func Quantile(c *bayesfit.Chain, burn, d int, p float64) float64 {
	states := discard(c, burn)
	n, _ := states.Dims()
	col := make([]float64, n)
	mat.Col(col, d, states)
	sort.Float64s(col)
	return stat.Quantile(p, stat.Empirical, col, nil)
}

func discard(c *bayesfit.Chain, burn int) *mat.Dense {
	if burn < 0 || burn >= c.Len() {
		panic("analyze: burn-in out of range")
	}
	return c.States().Slice(burn, c.Len(), 0, c.Dim()).(*mat.Dense)
}
