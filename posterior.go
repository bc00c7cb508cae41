package bayesfit

import "math"

// A LogProber returns the natural logarithm of an unnormalized probability
// density at x. Targets and priors both satisfy this interface, as do the
// distributions in gonum/stat/distmv.
type LogProber interface {
	LogProb(x []float64) float64
}

// Posterior is the unnormalized log-posterior of a nonlinear regression
// model under iid Gaussian observation noise with known standard deviation,
//
//	log p(w) = -1/(2σ²) Σ_i (y_i - model(x_i, w))² + log prior(w)
//
// up to an additive constant. Normalization constants cancel in the
// Metropolis-Hastings ratio and are omitted.
//
// Posterior reuses an internal prediction buffer across calls and must not
// be shared between goroutines.
type Posterior struct {
	model ForwardModel
	data  Dataset
	prior LogProber

	pred []float64
}

// NewPosterior constructs the posterior density for the given model and
// observations. prior may be nil, in which case the prior is an improper
// uniform over all of parameter space. A bounded prior must report -Inf
// outside its support; the forward model is never evaluated there.
func NewPosterior(model ForwardModel, data Dataset, prior LogProber) *Posterior {
	if model == nil {
		panic("bayesfit: nil forward model")
	}
	data.validate()
	return &Posterior{
		model: model,
		data:  data,
		prior: prior,
		pred:  make([]float64, data.Len()),
	}
}

// LogProb returns the unnormalized log-posterior density at w. Parameter
// vectors for which the model produces non-finite predictions have zero
// likelihood and yield -Inf, which a sampler rejects automatically.
func (p *Posterior) LogProb(w []float64) float64 {
	var lprior float64
	if p.prior != nil {
		lprior = p.prior.LogProb(w)
		if math.IsNaN(lprior) || math.IsInf(lprior, 0) {
			// Outside the prior support, or a prior reporting a non-finite
			// density: zero posterior mass either way. Skip the model
			// evaluation so that the forward model is never extrapolated
			// beyond its domain.
			return math.Inf(-1)
		}
	}
	p.model(p.pred, p.data.X, w)
	var sumsq float64
	for i, f := range p.pred {
		r := p.data.Y[i] - f
		sumsq += r * r
	}
	if math.IsNaN(sumsq) || math.IsInf(sumsq, 1) {
		return math.Inf(-1)
	}
	return -sumsq/(2*p.data.Sigma*p.data.Sigma) + lprior
}

// Prob returns the unnormalized posterior density at w. For implausible
// parameter vectors the value underflows to exactly zero.
func (p *Posterior) Prob(w []float64) float64 {
	return math.Exp(p.LogProb(w))
}
