package sequencing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

var breakEvenNever = 999

// proposeConversion sizes a Roth conversion that fills the remainder of the
// current federal bracket, capped by the scenario budget and the traditional
// IRA balance left after this year's withdrawals. The conversion is advisory:
// it is attached to the plan, not applied to the buckets.
func (s *Sequencer) proposeConversion(plan *domain.WithdrawalPlan, buckets domain.AccountBuckets, household domain.Household, opts Options) {
	if opts.RothConversionBudget.LessThanOrEqual(decimal.Zero) {
		return
	}
	iraRemaining := buckets.TraditionalIRA.Sub(plan.Withdrawals[domain.AccountTraditionalIRA])
	if iraRemaining.LessThanOrEqual(decimal.Zero) {
		return
	}
	ceiling, ok := s.tax.NextBracketCeiling(plan.Tax.TaxableIncome, household.FilingStatus)
	if !ok {
		// Already in the top bracket. There is no cheaper room to fill.
		return
	}
	room := ceiling.Sub(plan.Tax.TaxableIncome)
	amount := decimal.Min(opts.RothConversionBudget, decimal.Min(room, iraRemaining))
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}

	currentRate := plan.Tax.MarginalRate
	futureRate := opts.FutureMarginalRate
	if futureRate.LessThanOrEqual(decimal.Zero) {
		futureRate = domain.DefaultFutureMarginalRate
	}

	conversion := domain.RothConversion{
		Amount:         amount,
		AdditionalTax:  amount.Mul(currentRate).Round(2),
		BreakEvenYears: breakEvenYears(currentRate, futureRate),
	}
	futureSavings := amount.Mul(futureRate)
	if futureSavings.GreaterThan(conversion.AdditionalTax) {
		conversion.Recommendation = "Convert"
		plan.Notes = append(plan.Notes,
			fmt.Sprintf("convert %s to Roth, filling the %s%% bracket",
				amount.StringFixed(2), currentRate.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	} else {
		conversion.Recommendation = "Skip"
	}
	plan.RothConversion = conversion
}

// breakEvenYears estimates how long until a conversion's upfront tax is
// recovered by cheaper future withdrawals. Paying a higher rate now than
// later never breaks even.
func breakEvenYears(currentRate, futureRate decimal.Decimal) int {
	switch {
	case currentRate.GreaterThanOrEqual(futureRate):
		return breakEvenNever
	case currentRate.LessThan(futureRate.Sub(decimal.NewFromFloat(0.02))):
		return 0
	default:
		return 5
	}
}
