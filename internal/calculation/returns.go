package calculation

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/horizonfp/horizon/internal/domain"
)

var sqrtTwelve = math.Sqrt(12)

// DeterministicReturns yields the expected portfolio return every month,
// with no randomness. It backs the baseline projection.
type DeterministicReturns struct {
	monthly float64
}

// NewDeterministicReturns builds the fixed expected-return source. When the
// scalar mean is absent but a full model exists, the allocation-weighted
// expected return is used instead.
func NewDeterministicReturns(model domain.ReturnModel, allocation []float64) DeterministicReturns {
	mean := model.ScalarMean
	if mean == 0 && model.HasMatrix() && len(allocation) == len(model.ExpectedReturns) {
		for i, weight := range allocation {
			mean += weight * model.ExpectedReturns[i]
		}
	}
	return DeterministicReturns{monthly: mean / 12}
}

func (g DeterministicReturns) MonthlyReturn(int) float64 { return g.monthly }

func (g DeterministicReturns) Synthetic() bool { return false }

// StochasticModel holds the state shared by every Monte Carlo path: the
// lower Cholesky factor of the annual covariance matrix and the monthly
// lognormal drift per asset. It is immutable once built and safe to share
// across workers.
//
// Every asset steps lognormally, exp(drift + shock) - 1, with the drift
// set so the compounded path grows at the asset's stated annual mean. An
// arithmetic-normal draw at mean/12 would compound below the stated mean
// by half the variance.
//
// Without a usable covariance matrix the model falls back to synthesizing
// paths from the scalar mean and volatility via geometric Brownian motion;
// runs built on the fallback are flagged synthetic.
type StochasticModel struct {
	driftMonthly []float64
	factor       *mat.TriDense
	allocation   []float64

	synthetic     bool
	gbmDrift      float64
	gbmVolMonthly float64
}

// NewStochasticModel factors the covariance once for the whole run.
func NewStochasticModel(model domain.ReturnModel, allocation []float64) (*StochasticModel, error) {
	if !model.HasMatrix() {
		return &StochasticModel{
			synthetic:     true,
			gbmDrift:      (model.ScalarMean - 0.5*model.ScalarVol*model.ScalarVol) / 12,
			gbmVolMonthly: model.ScalarVol / sqrtTwelve,
		}, nil
	}

	n := len(model.AssetClasses)
	if len(allocation) != n {
		return nil, domain.NewValidationError("assumptions.allocation",
			"%d weights for %d asset classes", len(allocation), n)
	}
	data := make([]float64, 0, n*n)
	for _, row := range model.Covariance {
		data = append(data, row...)
	}
	var chol mat.Cholesky
	if !chol.Factorize(mat.NewSymDense(n, data)) {
		return nil, domain.NewValidationError("return_model.covariance",
			"matrix is not positive definite")
	}
	factor := &mat.TriDense{}
	chol.LTo(factor)

	driftMonthly := make([]float64, n)
	for i, mu := range model.ExpectedReturns {
		driftMonthly[i] = (mu - 0.5*model.Covariance[i][i]) / 12
	}
	return &StochasticModel{
		driftMonthly: driftMonthly,
		factor:       factor,
		allocation:   allocation,
	}, nil
}

// Synthetic reports whether the model is the scalar fallback.
func (m *StochasticModel) Synthetic() bool { return m.synthetic }

// Source returns a freshly seeded per-path return source over the shared
// factor. Each source owns its generator; sources must not be shared
// between workers.
func (m *StochasticModel) Source(seed int64) *StochasticReturns {
	return &StochasticReturns{
		model: m,
		rng:   rand.New(rand.NewSource(seed)),
		z:     make([]float64, len(m.driftMonthly)),
	}
}

// StochasticReturns steps each asset class lognormally with correlated
// Gaussian shocks from the factored covariance, scaled to monthly, and
// weights the asset returns by the allocation vector.
type StochasticReturns struct {
	model *StochasticModel
	rng   *rand.Rand
	z     []float64
}

func (s *StochasticReturns) MonthlyReturn(int) float64 {
	m := s.model
	if m.synthetic {
		return math.Expm1(m.gbmDrift + m.gbmVolMonthly*s.rng.NormFloat64())
	}
	for i := range s.z {
		s.z[i] = s.rng.NormFloat64()
	}
	total := 0.0
	for i, weight := range m.allocation {
		correlated := 0.0
		for j := 0; j <= i; j++ {
			correlated += m.factor.At(i, j) * s.z[j]
		}
		total += weight * math.Expm1(m.driftMonthly[i]+correlated/sqrtTwelve)
	}
	return total
}

func (s *StochasticReturns) Synthetic() bool { return s.model.synthetic }
