package calculation

import (
	"github.com/shopspring/decimal"
)

// RMDStartAge is the first age with a required minimum distribution.
const RMDStartAge = 73

// RMDCalculator computes required minimum distributions from the Uniform
// Lifetime Table in the bracket snapshot.
type RMDCalculator struct {
	Tables *TaxYearTables
}

// NewRMDCalculator creates an RMD calculator over the given snapshot.
func NewRMDCalculator(tables *TaxYearTables) *RMDCalculator {
	return &RMDCalculator{Tables: tables}
}

// RequiredDistribution returns the required minimum distribution for the
// given age and balance. Ages below the start age owe nothing; ages beyond
// the table clamp to its final factor.
func (rc *RMDCalculator) RequiredDistribution(age int, balance decimal.Decimal) decimal.Decimal {
	if age < RMDStartAge || balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	factor, ok := rc.Tables.RMDFactor(age)
	if !ok || factor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return balance.Div(factor).Round(2)
}
