package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnModel is the market-data snapshot a run consumes: annual expected
// returns and covariance per asset class, plus a scalar mean/volatility pair
// for the deterministic path and the synthetic fallback.
type ReturnModel struct {
	AssetClasses    []string    `yaml:"asset_classes" json:"asset_classes"`
	ExpectedReturns []float64   `yaml:"expected_returns" json:"expected_returns"`
	Covariance      [][]float64 `yaml:"covariance" json:"covariance"`
	ScalarMean      float64     `yaml:"scalar_mean" json:"scalar_mean"`
	ScalarVol       float64     `yaml:"scalar_vol" json:"scalar_vol"`
}

// HasMatrix reports whether the model carries a usable per-asset-class
// return vector and covariance matrix.
func (rm ReturnModel) HasMatrix() bool {
	n := len(rm.AssetClasses)
	if n == 0 || len(rm.ExpectedReturns) != n || len(rm.Covariance) != n {
		return false
	}
	for _, row := range rm.Covariance {
		if len(row) != n {
			return false
		}
	}
	return true
}

// Assumptions are the immutable scenario parameters for one run.
type Assumptions struct {
	ValuationDate       time.Time       `yaml:"valuation_date" json:"valuation_date"`
	TaxYear             int             `yaml:"tax_year" json:"tax_year"`
	HorizonMonths       int             `yaml:"horizon_months" json:"horizon_months"`
	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	HealthcareInflation decimal.Decimal `yaml:"healthcare_inflation" json:"healthcare_inflation"`
	TaxAlpha            decimal.Decimal `yaml:"tax_alpha" json:"tax_alpha"`
	FutureMarginalRate  decimal.Decimal `yaml:"future_marginal_rate" json:"future_marginal_rate"`
	Allocation          []float64       `yaml:"allocation" json:"allocation"`
	Seed                int64           `yaml:"seed" json:"seed"`
	NumPaths            int             `yaml:"num_paths" json:"num_paths"`
}

// Defaults used when the scenario leaves a field unset.
const (
	DefaultHorizonMonths = 360
	DefaultNumPaths      = 10000
	DefaultTaxYear       = 2024
)

// DefaultFutureMarginalRate is the fallback future marginal rate used by the
// Roth conversion comparison when the scenario does not supply one.
var DefaultFutureMarginalRate = decimal.NewFromFloat(0.24)

// YearsSince returns whole years elapsed from the valuation date to the
// start of the given month index.
func (a Assumptions) YearsSince(monthIndex int) int {
	return monthIndex / 12
}

// MonthDate returns the calendar date of the given month index, anchored at
// the first of the valuation month.
func (a Assumptions) MonthDate(monthIndex int) time.Time {
	anchor := time.Date(a.ValuationDate.Year(), a.ValuationDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	return anchor.AddDate(0, monthIndex, 0)
}
