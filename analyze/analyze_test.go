package analyze

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"bayesfit"
)

func sampleChain(t *testing.T, iterations int) *bayesfit.Chain {
	t.Helper()
	sigma := mat.NewSymDense(2, []float64{
		0.25, 0,
		0, 0.04,
	})
	target, ok := distmv.NewNormal([]float64{5, 3}, sigma, nil)
	if !ok {
		t.Fatal("bad target covariance")
	}
	prop, err := bayesfit.NewRandomWalk(mat.NewSymDense(2, []float64{
		0.3, 0,
		0, 0.05,
	}), rand.NewPCG(41, 1))
	if err != nil {
		t.Fatal(err)
	}
	chain, err := bayesfit.New(target, prop, rand.NewPCG(42, 1)).Run([]float64{5, 3}, iterations)
	if err != nil {
		t.Fatal(err)
	}
	return chain
}

func TestSummarize(t *testing.T) {
	chain := sampleChain(t, 5000)
	const burn = 500
	s := Summarize(chain, burn)

	if s.N != chain.Len()-burn {
		t.Errorf("summarized %d states, want %d", s.N, chain.Len()-burn)
	}
	if s.AcceptanceRate <= 0 || s.AcceptanceRate > 1 {
		t.Errorf("acceptance rate %v outside (0, 1]", s.AcceptanceRate)
	}
	want := []float64{5, 3}
	wantStd := []float64{0.5, 0.2}
	for j := range want {
		if math.Abs(s.Mean[j]-want[j]) > 0.1 {
			t.Errorf("dim %d: mean %v, want %v within 0.1", j, s.Mean[j], want[j])
		}
		if math.Abs(s.Std[j]-wantStd[j]) > 0.1 {
			t.Errorf("dim %d: std %v, want %v within 0.1", j, s.Std[j], wantStd[j])
		}
	}
}

func TestCovariance(t *testing.T) {
	chain := sampleChain(t, 5000)
	cov := Covariance(chain, 500)

	if math.Abs(cov.At(0, 0)-0.25) > 0.1 {
		t.Errorf("var[0] = %v, want 0.25 within 0.1", cov.At(0, 0))
	}
	if math.Abs(cov.At(1, 1)-0.04) > 0.05 {
		t.Errorf("var[1] = %v, want 0.04 within 0.05", cov.At(1, 1))
	}
	if cov.At(0, 1) != cov.At(1, 0) {
		t.Error("covariance not symmetric")
	}
}

func TestQuantile(t *testing.T) {
	chain := sampleChain(t, 5000)
	const burn = 500
	lo := Quantile(chain, burn, 0, 0.025)
	med := Quantile(chain, burn, 0, 0.5)
	hi := Quantile(chain, burn, 0, 0.975)

	if !(lo < med && med < hi) {
		t.Errorf("quantiles not ordered: %v, %v, %v", lo, med, hi)
	}
	if lo > 5 || hi < 5 {
		t.Errorf("95%% interval [%v, %v] does not bracket the target mean", lo, hi)
	}
}

func TestBurnInBounds(t *testing.T) {
	chain := sampleChain(t, 10)
	for _, burn := range []int{-1, 11, 12} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("burn=%d: no panic for out-of-range burn-in", burn)
				}
			}()
			Summarize(chain, burn)
		}()
	}
}
