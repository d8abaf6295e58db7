package sequencing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// Sequencer fills a year's spending need from the account buckets in
// tax-treatment order, then prices the resulting income through the tax
// engine. Optimize is pure: the caller owns the buckets and applies the
// returned plan.
type Sequencer struct {
	tax TaxCalculator
	rmd RMDCalculator
}

// NewSequencer creates a sequencer over the given calculators.
func NewSequencer(tax TaxCalculator, rmd RMDCalculator) *Sequencer {
	return &Sequencer{tax: tax, rmd: rmd}
}

var deferredKinds = []domain.AccountKind{
	domain.AccountTraditionalIRA,
	domain.AccountTraditional401k,
}

// Optimize produces the withdrawal plan for one year. Phases run in order:
// required distributions, gap computation, charitable diversion, taxable,
// tax-deferred, Roth, income synthesis, conversion sizing, and scoring.
func (s *Sequencer) Optimize(buckets domain.AccountBuckets, needs Needs, household domain.Household, opts Options) domain.WithdrawalPlan {
	plan := domain.WithdrawalPlan{
		Withdrawals: make(map[domain.AccountKind]decimal.Decimal),
		RMDs:        make(map[domain.AccountKind]decimal.Decimal),
	}

	// Phase 1: required distributions come out no matter what.
	for _, kind := range deferredKinds {
		rmd := s.rmd.RequiredDistribution(household.Age1, buckets.Balance(kind))
		if rmd.GreaterThan(decimal.Zero) {
			plan.RMDs[kind] = rmd
			plan.Withdrawals[kind] = rmd
		}
	}

	// Phase 2: the gap left after income and RMD cash.
	otherIncome := needs.OtherIncome().Add(plan.TotalRMDs())
	remaining := decimal.Max(decimal.Zero, needs.TargetSpending.Sub(otherIncome))

	// Phase 3: divert IRA RMD dollars to charity. The QCD satisfies the
	// RMD, stays out of ordinary income, and counts as spending met.
	iraRMD := plan.RMDs[domain.AccountTraditionalIRA]
	if opts.CharitableGiving.GreaterThan(decimal.Zero) && iraRMD.GreaterThan(decimal.Zero) {
		qcd := decimal.Min(opts.CharitableGiving, decimal.Min(QCDAnnualCap, iraRMD))
		plan.QCDUsed = qcd
		remaining = decimal.Max(decimal.Zero, remaining.Sub(qcd))
		plan.Notes = append(plan.Notes,
			fmt.Sprintf("QCD of %s satisfies IRA RMD without ordinary income", qcd.StringFixed(2)))
	}

	// Phase 4: taxable account first, gains at preferential rates.
	if taxableDraw := decimal.Min(remaining, buckets.Taxable); taxableDraw.GreaterThan(decimal.Zero) {
		plan.Withdrawals[domain.AccountTaxable] = taxableDraw
		remaining = remaining.Sub(taxableDraw)
		if opts.LossesAvailable.GreaterThan(decimal.Zero) {
			plan.TaxLossHarvested = decimal.Min(opts.LossesAvailable, EmbeddedGainFraction.Mul(taxableDraw))
			plan.Notes = append(plan.Notes,
				fmt.Sprintf("harvested %s of losses against embedded gains", plan.TaxLossHarvested.StringFixed(2)))
		}
	}

	// Phase 5: tax-deferred beyond the RMDs already taken.
	for _, kind := range deferredKinds {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		available := decimal.Max(decimal.Zero, buckets.Balance(kind).Sub(plan.Withdrawals[kind]))
		if draw := decimal.Min(remaining, available); draw.GreaterThan(decimal.Zero) {
			plan.Withdrawals[kind] = plan.Withdrawals[kind].Add(draw)
			remaining = remaining.Sub(draw)
		}
	}

	// Phase 6: Roth is preserved unless explicitly permitted.
	if opts.AllowRothWithdrawals && remaining.GreaterThan(decimal.Zero) {
		if draw := decimal.Min(remaining, buckets.RothIRA); draw.GreaterThan(decimal.Zero) {
			plan.Withdrawals[domain.AccountRothIRA] = draw
			remaining = remaining.Sub(draw)
		}
	}

	plan.Shortfall = remaining
	if plan.Shortfall.GreaterThan(decimal.Zero) {
		plan.Notes = append(plan.Notes,
			fmt.Sprintf("spending need unmet by %s", plan.Shortfall.StringFixed(2)))
	}

	// Phase 7: synthesize the year's income and price it.
	traditional := plan.Withdrawals[domain.AccountTraditionalIRA].
		Add(plan.Withdrawals[domain.AccountTraditional401k])
	realizedGains := decimal.Max(decimal.Zero,
		EmbeddedGainFraction.Mul(plan.Withdrawals[domain.AccountTaxable]).Sub(plan.TaxLossHarvested))

	plan.Income = domain.IncomeBreakdown{
		OrdinaryIncome:        needs.OrdinaryIncome.Add(decimal.Max(decimal.Zero, traditional.Sub(plan.QCDUsed))),
		LongTermCapitalGains:  needs.CapitalGainsIncome.Add(realizedGains),
		SocialSecurity:        needs.SocialSecurity,
		RothDistributions:     plan.Withdrawals[domain.AccountRothIRA],
		MunicipalBondInterest: needs.TaxFreeIncome,
	}
	plan.Tax = s.tax.CalculateTax(plan.Income, household)

	// Phase 8: size a bracket-fill Roth conversion if budget remains.
	s.proposeConversion(&plan, buckets, household, opts)

	// Phase 9: advisory efficiency score.
	plan.EfficiencyScore = efficiencyScore(plan)

	return plan
}

// efficiencyScore grades the plan 0-100: credit for QCDs and harvesting,
// a deduction for combined federal and state effective rate above 25%.
func efficiencyScore(plan domain.WithdrawalPlan) decimal.Decimal {
	score := decimal.NewFromInt(100)
	if plan.QCDUsed.GreaterThan(decimal.Zero) {
		score = score.Add(decimal.NewFromInt(10))
	}
	if plan.TaxLossHarvested.GreaterThan(decimal.Zero) {
		score = score.Add(decimal.NewFromInt(5))
	}
	if plan.Tax.AGI.GreaterThan(decimal.Zero) {
		ratePoints := plan.Tax.FederalTax.Add(plan.Tax.StateTax).
			Div(plan.Tax.AGI).
			Mul(decimal.NewFromInt(100))
		if excess := ratePoints.Sub(decimal.NewFromInt(25)); excess.GreaterThan(decimal.Zero) {
			score = score.Sub(excess.Mul(decimal.NewFromFloat(0.5)))
		}
	}
	score = decimal.Min(score, decimal.NewFromInt(100))
	return decimal.Max(score, decimal.Zero)
}
