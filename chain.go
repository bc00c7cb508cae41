package bayesfit

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Chain is the trajectory produced by a sampling run: an append-only,
// ordered sequence of parameter vectors. Entry 0 is the initial state and
// entry n+1 the state after the n-th accept/reject decision, so a completed
// run of k iterations holds exactly k+1 states. Chains are read-only once
// the run that built them has returned.
type Chain struct {
	states   *mat.Dense
	dim      int
	n        int
	accepted int
}

func newChain(initial []float64, iterations int) *Chain {
	dim := len(initial)
	c := &Chain{
		states: mat.NewDense(iterations+1, dim, nil),
		dim:    dim,
	}
	c.states.SetRow(0, initial)
	c.n = 1
	return c
}

func (c *Chain) push(w []float64, accepted bool) {
	c.states.SetRow(c.n, w)
	c.n++
	if accepted {
		c.accepted++
	}
}

// Len returns the number of states in the chain, including the initial one.
func (c *Chain) Len() int {
	return c.n
}

// Dim returns the dimension of the parameter vectors.
func (c *Chain) Dim() int {
	return c.dim
}

// State returns the i-th state of the chain. The returned slice is backed by
// the chain's storage and must not be modified.
func (c *Chain) State(i int) []float64 {
	if i < 0 || i >= c.n {
		panic("bayesfit: chain index out of range")
	}
	return c.states.RawRowView(i)
}

// Last returns the most recent state of the chain.
func (c *Chain) Last() []float64 {
	return c.states.RawRowView(c.n - 1)
}

// States returns the trajectory as a Len × Dim matrix view backed by the
// chain's storage. It must not be modified.
func (c *Chain) States() *mat.Dense {
	return c.states.Slice(0, c.n, 0, c.dim).(*mat.Dense)
}

// Accepted returns the number of accepted proposals.
func (c *Chain) Accepted() int {
	return c.accepted
}

// AcceptanceRate returns the fraction of proposals accepted, or zero for a
// chain that has taken no steps.
func (c *Chain) AcceptanceRate() float64 {
	if c.n < 2 {
		return 0
	}
	return float64(c.accepted) / float64(c.n-1)
}

// Mean stores the per-dimension mean of the chain states into dst and
// returns it. If dst is nil a new slice is allocated.
func (c *Chain) Mean(dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, c.dim)
	}
	if len(dst) != c.dim {
		panic(errLen)
	}
	col := make([]float64, c.n)
	for j := range dst {
		mat.Col(col, j, c.States())
		dst[j] = stat.Mean(col, nil)
	}
	return dst
}
