package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// calculateNIIT applies the 3.8% investment-income surtax when AGI exceeds
// the filing-status threshold. The investment-income base here is long-term
// gains plus qualified dividends; the caller owns its composition.
func (te *TaxEngine) calculateNIIT(agi, investmentIncome decimal.Decimal, fs domain.FilingStatus) decimal.Decimal {
	threshold := te.Tables.NIITThresholdFor(fs)
	if agi.LessThanOrEqual(threshold) {
		return decimal.Zero
	}
	base := decimal.Min(investmentIncome, agi.Sub(threshold))
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Mul(te.Tables.NIITRate)
}
