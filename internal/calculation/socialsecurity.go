package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

var (
	ssHalf       = decimal.NewFromFloat(0.5)
	ssEightyFive = decimal.NewFromFloat(0.85)
)

// taxableSocialSecurity applies the combined-income formula. Combined
// income is the AGI proxy (ordinary, gains, dividends, tax-exempt interest)
// plus half the gross benefit; the tier thresholds come from the bracket
// snapshot per filing status. The result never exceeds 85% of the benefit.
func (te *TaxEngine) taxableSocialSecurity(income domain.IncomeBreakdown, fs domain.FilingStatus) decimal.Decimal {
	ss := income.SocialSecurity
	if ss.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	thresholds := te.Tables.SSThresholdsFor(fs)

	combined := income.OrdinaryIncome.
		Add(income.LongTermCapitalGains).
		Add(income.QualifiedDividends).
		Add(income.MunicipalBondInterest).
		Add(ss.Mul(ssHalf))

	if combined.LessThanOrEqual(thresholds.Base) {
		return decimal.Zero
	}

	if combined.LessThanOrEqual(thresholds.Upper) {
		excess := combined.Sub(thresholds.Base)
		return decimal.Min(ss.Mul(ssHalf), excess.Mul(ssHalf))
	}

	tierOne := decimal.Min(ss.Mul(ssHalf), thresholds.Upper.Sub(thresholds.Base).Mul(ssHalf))
	tierTwo := combined.Sub(thresholds.Upper).Mul(ssEightyFive)
	return decimal.Min(ss.Mul(ssEightyFive), tierOne.Add(tierTwo))
}
