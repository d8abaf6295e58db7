package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// stateTax dispatches on the registered rule for the household's state.
// Unknown states are rejected at the scenario boundary; here they fall back
// to zero so the engine stays total.
func (te *TaxEngine) stateTax(taxableIncome decimal.Decimal, household domain.Household) decimal.Decimal {
	rule, err := te.Tables.StateRuleFor(household.State)
	if err != nil {
		return decimal.Zero
	}
	switch rule.Kind {
	case StateRuleNone:
		return decimal.Zero
	case StateRuleFlat:
		return taxableIncome.Mul(rule.Rate)
	case StateRuleProgressive:
		return bracketTax(rule.Brackets[household.FilingStatus], taxableIncome)
	}
	return decimal.Zero
}
