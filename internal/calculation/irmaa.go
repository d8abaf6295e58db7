package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// calculateIRMAA determines the Medicare surcharge for the household MAGI.
// Only members aged 65 or older owe the surcharge. Tier selection walks the
// schedule upward and picks the first tier whose ceiling the MAGI does not
// exceed; the open top tier catches everything else. PartB and PartD on the
// result are annualized across the eligible members.
func (te *TaxEngine) calculateIRMAA(magi decimal.Decimal, household domain.Household) domain.IRMAAResult {
	result := domain.IRMAAResult{
		PartB: decimal.Zero,
		PartD: decimal.Zero,
		MAGI:  magi,
	}

	eligible := household.MedicareEligibleCount()
	if eligible == 0 {
		result.TotalAnnual = decimal.Zero
		return result
	}

	tiers := te.Tables.IRMAATiersFor(household.FilingStatus)
	tierIndex := len(tiers) - 1
	for i, tier := range tiers {
		if magi.LessThanOrEqual(tier.MAGICeiling) {
			tierIndex = i
			break
		}
	}

	tier := tiers[tierIndex]
	persons := decimal.NewFromInt(int64(eligible))

	result.Tier = tierIndex
	result.PartB = tier.PartB.Mul(decimalTwelve).Mul(persons)
	result.PartD = tier.PartD.Mul(decimalTwelve).Mul(persons)
	result.TotalAnnual = result.PartB.Add(result.PartD)
	return result
}
