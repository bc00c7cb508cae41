// package lsq fits the parameters of a nonlinear regression model to
// observed data by least squares. Under iid Gaussian noise with known
// variance the least-squares solution is the maximum-likelihood estimate,
// which is the usual starting point for a sampling chain.
//
// The minimization is performed with the Levenberg-Marquardt algorithm using
// a numerically differentiated Jacobian.
package lsq

import (
	"fmt"

	"github.com/maorshutman/lm"

	"bayesfit"
)

const (
	defaultIterations = 100
	objectiveTol      = 1e-16
)

// Fit minimizes the sum of squared residuals
//
//	Σ_i (model(x_i, w) - y_i)²
//
// over w, starting from the initial guess w0, and returns the best-fit
// parameter vector. w0 is not modified. An error is returned if the solver
// fails.
func Fit(model bayesfit.ForwardModel, data bayesfit.Dataset, w0 []float64) ([]float64, error) {
	if model == nil {
		panic("lsq: nil forward model")
	}
	if data.Len() == 0 {
		panic("lsq: empty dataset")
	}
	if len(w0) == 0 {
		panic("lsq: empty initial guess")
	}

	pred := make([]float64, data.Len())
	resid := func(dst, w []float64) {
		model(pred, data.X, w)
		for i := range dst {
			dst[i] = pred[i] - data.Y[i]
		}
	}

	jac := lm.NumJac{Func: resid}
	prob := lm.LMProblem{
		Dim:        len(w0),
		Size:       data.Len(),
		Func:       resid,
		Jac:        jac.Jac,
		InitParams: append([]float64(nil), w0...),
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}
	results, err := lm.LM(prob, &lm.Settings{Iterations: defaultIterations, ObjectiveTol: objectiveTol})
	if err != nil {
		return nil, fmt.Errorf("lsq: fit failed: %w", err)
	}
	return results.X, nil
}
