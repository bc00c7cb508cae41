package bayesfit

import (
	"context"
	"math"
	"math/rand/v2"
)

// Sampler draws samples from an unnormalized target density with the
// Metropolis-Hastings algorithm and a symmetric proposal. It owns no chain
// state between runs; each call to Run builds and returns a fresh Chain.
type Sampler struct {
	target   LogProber
	proposal Proposer
	rnd      *rand.Rand
}

// New returns a Sampler for the given target and proposal. src supplies the
// uniform accept/reject draws and must be independent of the proposal's
// source; a nil src uses the global random source.
func New(target LogProber, proposal Proposer, src rand.Source) *Sampler {
	if target == nil {
		panic("bayesfit: nil target")
	}
	if proposal == nil {
		panic("bayesfit: nil proposal")
	}
	s := &Sampler{target: target, proposal: proposal}
	if src != nil {
		s.rnd = rand.New(src)
	}
	return s
}

// Run performs iterations Metropolis-Hastings steps starting from initial
// and returns the resulting chain of iterations+1 states.
func (s *Sampler) Run(initial []float64, iterations int) (*Chain, error) {
	return s.RunContext(context.Background(), initial, iterations)
}

// RunContext is Run with cancellation. If ctx is canceled mid-run the
// partial chain built so far is returned together with the context error;
// the chain is well formed, with one state per completed iteration plus the
// initial state. A nil error means all iterations ran.
func (s *Sampler) RunContext(ctx context.Context, initial []float64, iterations int) (*Chain, error) {
	if len(initial) != s.proposal.Dim() {
		panic(errLen)
	}
	if iterations < 0 {
		panic("bayesfit: negative iteration count")
	}

	chain := newChain(initial, iterations)

	cur := append([]float64(nil), initial...)
	proposed := make([]float64, len(cur))

	lp := s.target.LogProb(cur)
	if math.IsNaN(lp) || math.IsInf(lp, 0) {
		// The acceptance ratio is undefined from such a state. Starting at
		// the maximum-likelihood estimate avoids this in normal use.
		return chain, ErrDegenerateState
	}

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return chain, err
		}

		s.proposal.Propose(proposed, cur)
		plp := s.target.LogProb(proposed)
		if math.IsNaN(plp) {
			// Invalid model output for an implausible candidate: zero
			// likelihood, automatic rejection.
			plp = math.Inf(-1)
		}
		if math.IsInf(plp, 1) {
			// An infinite density would be accepted unconditionally and
			// every later ratio against it is NaN or -Inf, pinning the
			// chain there. Report it with the trajectory built so far.
			return chain, ErrDegenerateState
		}

		// alpha = min(1, exp(plp - lp)), evaluated in log space. A step
		// uphill (plp >= lp) is always accepted.
		logr := plp - lp
		accept := logr >= 0
		if !accept {
			accept = s.uniform() < math.Exp(logr)
		}
		if accept {
			cur, proposed = proposed, cur
			lp = plp
		}
		chain.push(cur, accept)
	}
	return chain, nil
}

func (s *Sampler) uniform() float64 {
	if s.rnd == nil {
		return rand.Float64()
	}
	return s.rnd.Float64()
}
