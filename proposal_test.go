package bayesfit

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// The random walk must be symmetric about the current state with the
// supplied covariance: over many draws the sample mean approaches the center
// and the sample covariance approaches sigma.
func TestRandomWalkMoments(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{
		0.05, 0.01,
		0.01, 0.02,
	})
	center := []float64{1, -2}

	rw, err := NewRandomWalk(sigma, rand.NewPCG(21, 1))
	if err != nil {
		t.Fatal(err)
	}
	if rw.Dim() != 2 {
		t.Fatalf("dim %d, want 2", rw.Dim())
	}

	const n = 200000
	draws := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		rw.Propose(draws.RawRowView(i), center)
	}

	col := make([]float64, n)
	for j := range center {
		mat.Col(col, j, draws)
		mean := stat.Mean(col, nil)
		if math.Abs(mean-center[j]) > 0.01 {
			t.Errorf("dim %d: proposal mean %v, want %v within 0.01", j, mean, center[j])
		}
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, draws, nil)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got, want := cov.At(i, j), sigma.At(i, j); math.Abs(got-want) > 5e-3 {
				t.Errorf("cov[%d,%d] = %v, want %v within 5e-3", i, j, got, want)
			}
		}
	}
}

// Successive proposals must each use fresh draws.
func TestRandomWalkFreshDraws(t *testing.T) {
	rw, err := NewRandomWalk(diagCov(1, 1), rand.NewPCG(22, 1))
	if err != nil {
		t.Fatal(err)
	}
	cur := []float64{0, 0}
	a := make([]float64, 2)
	b := make([]float64, 2)
	rw.Propose(a, cur)
	rw.Propose(b, cur)
	if a[0] == b[0] && a[1] == b[1] {
		t.Error("two proposals returned identical candidates")
	}
}

// A covariance without a Cholesky decomposition must be rejected at setup,
// before any sampling happens.
func TestRandomWalkBadCovariance(t *testing.T) {
	for name, sigma := range map[string]*mat.SymDense{
		"singular": diagCov(0.05, 0),
		"negative": diagCov(0.05, -0.1),
		"rank one": mat.NewSymDense(2, []float64{
			1, 1,
			1, 1,
		}),
	} {
		_, err := NewRandomWalk(sigma, nil)
		if err != ErrNotPositiveDefinite {
			t.Errorf("%s covariance: error %v, want ErrNotPositiveDefinite", name, err)
		}
	}
}
