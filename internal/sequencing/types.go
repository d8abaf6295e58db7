package sequencing

import (
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// QCDAnnualCap is the statutory ceiling on qualified charitable
// distributions per year.
var QCDAnnualCap = decimal.NewFromInt(105000)

// EmbeddedGainFraction is the assumed share of a taxable-account withdrawal
// that is realized long-term gain; cost basis is tracked at the bucket level.
var EmbeddedGainFraction = decimal.NewFromFloat(0.30)

// TaxCalculator is the slice of the tax engine the sequencer depends on.
type TaxCalculator interface {
	CalculateTax(income domain.IncomeBreakdown, household domain.Household) domain.TaxResult
	NextBracketCeiling(taxableIncome decimal.Decimal, fs domain.FilingStatus) (decimal.Decimal, bool)
}

// RMDCalculator produces the required minimum distribution for an age and
// balance.
type RMDCalculator interface {
	RequiredDistribution(age int, balance decimal.Decimal) decimal.Decimal
}

// Needs describes the year being planned: the spending target and the
// income already arriving from streams, by tax character.
type Needs struct {
	TargetSpending     decimal.Decimal
	OrdinaryIncome     decimal.Decimal
	CapitalGainsIncome decimal.Decimal
	SocialSecurity     decimal.Decimal
	TaxFreeIncome      decimal.Decimal
}

// OtherIncome is the cash arriving before any withdrawal is planned.
func (n Needs) OtherIncome() decimal.Decimal {
	return n.OrdinaryIncome.
		Add(n.CapitalGainsIncome).
		Add(n.SocialSecurity).
		Add(n.TaxFreeIncome)
}

// Options are the optional planning levers for the year.
type Options struct {
	CharitableGiving     decimal.Decimal
	RothConversionBudget decimal.Decimal
	AllowRothWithdrawals bool
	LossesAvailable      decimal.Decimal

	// FutureMarginalRate is the rate assumed on future tax-deferred
	// withdrawals when judging a Roth conversion. Zero means the default.
	FutureMarginalRate decimal.Decimal
}

// FromPlanning maps scenario planning options onto sequencer options.
func FromPlanning(p domain.PlanningOptions, futureMarginalRate decimal.Decimal) Options {
	return Options{
		CharitableGiving:     p.CharitableGiving,
		RothConversionBudget: p.RothConversionBudget,
		AllowRothWithdrawals: p.AllowRothWithdrawals,
		LossesAvailable:      p.TaxLossesAvailable,
		FutureMarginalRate:   futureMarginalRate,
	}
}
