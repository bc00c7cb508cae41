// package bayesfit implements Bayesian parameter inference for nonlinear
// regression models using a random-walk Metropolis-Hastings sampler.
//
// Given a forward model y = f(x, w) and observations corrupted by iid
// Gaussian noise with known standard deviation, bayesfit draws correlated
// samples from the unnormalized posterior over the parameter vector w.
// Candidates are proposed from a multivariate Gaussian centered at the
// current chain state, and accepted or rejected by the Metropolis rule.
//
// The main routine is Sampler.Run. The chain is typically started at the
// maximum-likelihood estimate, which the lsq subpackage computes with a
// nonlinear least-squares solver. The grid subpackage evaluates the posterior
// on a grid for visualization and validation, and the analyze subpackage
// summarizes finished chains.
package bayesfit

import (
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	errLen   = "bayesfit: length mismatch"
	errSigma = "bayesfit: noise standard deviation not positive"
)

var (
	// ErrNotPositiveDefinite is returned when a proposal covariance matrix
	// has no Cholesky decomposition.
	ErrNotPositiveDefinite = errors.New("bayesfit: proposal covariance not positive definite")

	// ErrDegenerateState is returned when the chain's current state has a
	// zero or non-finite posterior density, making the acceptance ratio
	// undefined.
	ErrDegenerateState = errors.New("bayesfit: chain state has zero or non-finite density")
)

// A ForwardModel predicts the dependent variable at every location in x for
// the parameter vector w, storing the result in dst. dst and x must have the
// same length. Implementations must be deterministic and free of side
// effects.
type ForwardModel func(dst, x, w []float64)

// Dataset is a fixed set of paired observations with a known noise standard
// deviation. It must not be modified during a sampling run.
type Dataset struct {
	// X holds the independent-variable values and Y the corresponding noisy
	// observations. The slices must have equal length.
	X, Y []float64

	// Sigma is the standard deviation of the iid Gaussian observation noise.
	// Must be positive.
	Sigma float64
}

// Len returns the number of observations.
func (d Dataset) Len() int {
	return len(d.X)
}

func (d Dataset) validate() {
	if len(d.X) != len(d.Y) {
		panic(errLen)
	}
	if d.Sigma <= 0 {
		panic(errSigma)
	}
}

// Generate synthesizes a Dataset by evaluating model at the locations in x
// with the true parameter vector w and adding iid N(0, sigma^2) noise drawn
// from src. A nil src uses the global random source.
func Generate(model ForwardModel, x, w []float64, sigma float64, src rand.Source) Dataset {
	if sigma <= 0 {
		panic(errSigma)
	}
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	y := make([]float64, len(x))
	model(y, x, w)
	for i := range y {
		y[i] += noise.Rand()
	}
	return Dataset{X: append([]float64(nil), x...), Y: y, Sigma: sigma}
}
