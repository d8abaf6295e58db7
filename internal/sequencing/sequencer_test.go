package sequencing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfp/horizon/internal/domain"
)

// stubTax prices ordinary income at one flat rate and reports a fixed
// bracket ceiling, keeping sequencing assertions arithmetic.
type stubTax struct {
	rate    decimal.Decimal
	ceiling decimal.Decimal
	top     bool
}

func (s stubTax) CalculateTax(income domain.IncomeBreakdown, _ domain.Household) domain.TaxResult {
	agi := income.OrdinaryIncome.
		Add(income.LongTermCapitalGains).
		Add(income.QualifiedDividends)
	fed := income.OrdinaryIncome.Mul(s.rate)
	return domain.TaxResult{
		AGI:           agi,
		MAGI:          agi.Add(income.MunicipalBondInterest).Add(income.RothDistributions),
		TaxableIncome: agi,
		FederalTax:    fed,
		TotalTax:      fed,
		MarginalRate:  s.rate,
	}
}

func (s stubTax) NextBracketCeiling(_ decimal.Decimal, _ domain.FilingStatus) (decimal.Decimal, bool) {
	if s.top {
		return decimal.Zero, false
	}
	return s.ceiling, true
}

// stubRMD divides the balance by a fixed factor from age 73.
type stubRMD struct {
	factor decimal.Decimal
}

func (s stubRMD) RequiredDistribution(age int, balance decimal.Decimal) decimal.Decimal {
	if age < 73 || balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return balance.Div(s.factor).Round(2)
}

func newTestSequencer() *Sequencer {
	return NewSequencer(
		stubTax{rate: decimal.NewFromFloat(0.22), ceiling: decimal.NewFromInt(201050)},
		stubRMD{factor: decimal.NewFromInt(25)},
	)
}

func household(age int) domain.Household {
	return domain.Household{
		State:        "FL",
		FilingStatus: domain.FilingSingle,
		Age1:         age,
	}
}

func TestRequiredDistributionsAlwaysTaken(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{
		TraditionalIRA:  decimal.NewFromInt(500000),
		Traditional401k: decimal.NewFromInt(250000),
	}

	plan := seq.Optimize(buckets, Needs{}, household(75), Options{})

	assert.True(t, plan.RMDs[domain.AccountTraditionalIRA].Equal(decimal.NewFromInt(20000)))
	assert.True(t, plan.RMDs[domain.AccountTraditional401k].Equal(decimal.NewFromInt(10000)))
	for kind, rmd := range plan.RMDs {
		assert.True(t, plan.Withdrawals[kind].GreaterThanOrEqual(rmd),
			"withdrawal for %s must cover its required distribution", kind)
	}
	assert.True(t, plan.TotalWithdrawals().Equal(decimal.NewFromInt(30000)))
}

func TestTaxableDrawnBeforeDeferred(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{
		Taxable:        decimal.NewFromInt(300000),
		TraditionalIRA: decimal.NewFromInt(400000),
	}
	needs := Needs{TargetSpending: decimal.NewFromInt(80000)}

	plan := seq.Optimize(buckets, needs, household(65), Options{})

	assert.True(t, plan.Withdrawals[domain.AccountTaxable].Equal(decimal.NewFromInt(80000)))
	assert.True(t, plan.Withdrawals[domain.AccountTraditionalIRA].IsZero())
	assert.True(t, plan.Shortfall.IsZero())
	assert.True(t, plan.Income.OrdinaryIncome.IsZero())
	assert.True(t, plan.Income.LongTermCapitalGains.Equal(decimal.NewFromInt(24000)),
		"thirty percent of the taxable draw is realized gain")
}

func TestDeferredCoversWhatTaxableCannot(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{
		Taxable:        decimal.NewFromInt(30000),
		TraditionalIRA: decimal.NewFromInt(400000),
	}
	needs := Needs{TargetSpending: decimal.NewFromInt(100000)}

	plan := seq.Optimize(buckets, needs, household(65), Options{})

	assert.True(t, plan.Withdrawals[domain.AccountTaxable].Equal(decimal.NewFromInt(30000)))
	assert.True(t, plan.Withdrawals[domain.AccountTraditionalIRA].Equal(decimal.NewFromInt(70000)))
	assert.True(t, plan.Shortfall.IsZero())
	assert.True(t, plan.Income.OrdinaryIncome.Equal(decimal.NewFromInt(70000)))
	assert.True(t, plan.Income.LongTermCapitalGains.Equal(decimal.NewFromInt(9000)))
}

func TestRothPreservedByDefault(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{
		Taxable:        decimal.NewFromInt(10000),
		TraditionalIRA: decimal.NewFromInt(20000),
		RothIRA:        decimal.NewFromInt(500000),
	}
	needs := Needs{TargetSpending: decimal.NewFromInt(100000)}

	plan := seq.Optimize(buckets, needs, household(65), Options{})

	assert.True(t, plan.Withdrawals[domain.AccountRothIRA].IsZero(),
		"Roth must stay untouched unless explicitly allowed")
	assert.True(t, plan.Shortfall.Equal(decimal.NewFromInt(70000)))
	assert.NotEmpty(t, plan.Notes)
}

func TestRothUsedWhenPermitted(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{
		Taxable:        decimal.NewFromInt(10000),
		TraditionalIRA: decimal.NewFromInt(20000),
		RothIRA:        decimal.NewFromInt(500000),
	}
	needs := Needs{TargetSpending: decimal.NewFromInt(100000)}

	plan := seq.Optimize(buckets, needs, household(65), Options{AllowRothWithdrawals: true})

	assert.True(t, plan.Withdrawals[domain.AccountRothIRA].Equal(decimal.NewFromInt(70000)))
	assert.True(t, plan.Shortfall.IsZero())
	assert.True(t, plan.Income.RothDistributions.Equal(decimal.NewFromInt(70000)))
}

func TestQCDLimits(t *testing.T) {
	tests := []struct {
		name       string
		age        int
		iraBalance decimal.Decimal
		giving     decimal.Decimal
		wantQCD    decimal.Decimal
	}{
		{
			name:       "capped by giving",
			age:        75,
			iraBalance: decimal.NewFromInt(500000),
			giving:     decimal.NewFromInt(10000),
			wantQCD:    decimal.NewFromInt(10000),
		},
		{
			name:       "capped by the required distribution",
			age:        75,
			iraBalance: decimal.NewFromInt(500000),
			giving:     decimal.NewFromInt(30000),
			wantQCD:    decimal.NewFromInt(20000),
		},
		{
			name:       "capped by the statutory ceiling",
			age:        75,
			iraBalance: decimal.NewFromInt(5000000),
			giving:     decimal.NewFromInt(150000),
			wantQCD:    decimal.NewFromInt(105000),
		},
		{
			name:       "no distribution required yet",
			age:        65,
			iraBalance: decimal.NewFromInt(500000),
			giving:     decimal.NewFromInt(10000),
			wantQCD:    decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := newTestSequencer()
			buckets := domain.AccountBuckets{TraditionalIRA: tt.iraBalance}
			plan := seq.Optimize(buckets, Needs{}, household(tt.age), Options{CharitableGiving: tt.giving})

			assert.True(t, plan.QCDUsed.Equal(tt.wantQCD),
				"QCD = %s, want %s", plan.QCDUsed, tt.wantQCD)
		})
	}
}

func TestQCDReducesOrdinaryIncome(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{TraditionalIRA: decimal.NewFromInt(500000)}
	needs := Needs{TargetSpending: decimal.NewFromInt(20000)}

	plan := seq.Optimize(buckets, needs, household(75), Options{CharitableGiving: decimal.NewFromInt(5000)})

	require.True(t, plan.QCDUsed.Equal(decimal.NewFromInt(5000)))
	assert.True(t, plan.Income.OrdinaryIncome.Equal(decimal.NewFromInt(15000)),
		"the diverted QCD dollars never hit ordinary income")
}

func TestHarvestOffsetsRealizedGains(t *testing.T) {
	tests := []struct {
		name      string
		losses    decimal.Decimal
		wantHarv  decimal.Decimal
		wantGains decimal.Decimal
	}{
		{
			name:      "losses exceed embedded gains",
			losses:    decimal.NewFromInt(50000),
			wantHarv:  decimal.NewFromInt(30000),
			wantGains: decimal.Zero,
		},
		{
			name:      "losses partially offset",
			losses:    decimal.NewFromInt(10000),
			wantHarv:  decimal.NewFromInt(10000),
			wantGains: decimal.NewFromInt(20000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := newTestSequencer()
			buckets := domain.AccountBuckets{Taxable: decimal.NewFromInt(200000)}
			needs := Needs{TargetSpending: decimal.NewFromInt(100000)}

			plan := seq.Optimize(buckets, needs, household(65), Options{LossesAvailable: tt.losses})

			assert.True(t, plan.TaxLossHarvested.Equal(tt.wantHarv))
			assert.True(t, plan.Income.LongTermCapitalGains.Equal(tt.wantGains))
		})
	}
}

func TestNoBucketOverdrawn(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{
		Taxable:         decimal.NewFromInt(40000),
		TraditionalIRA:  decimal.NewFromInt(60000),
		Traditional401k: decimal.NewFromInt(15000),
		RothIRA:         decimal.NewFromInt(25000),
	}
	needs := Needs{TargetSpending: decimal.NewFromInt(1000000)}

	plan := seq.Optimize(buckets, needs, household(80), Options{AllowRothWithdrawals: true})

	for _, kind := range domain.AllAccountKinds {
		assert.True(t, plan.Withdrawals[kind].LessThanOrEqual(buckets.Balance(kind)),
			"%s drawn beyond its balance", kind)
	}
	assert.True(t, plan.Shortfall.GreaterThan(decimal.Zero))
	assert.True(t, plan.Withdrawals[domain.AccountHSA].IsZero(),
		"the HSA is never part of spending withdrawals")
}

func TestConversionFillsBracketRoom(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{TraditionalIRA: decimal.NewFromInt(1000000)}
	needs := Needs{TargetSpending: decimal.NewFromInt(50000)}
	opts := Options{RothConversionBudget: decimal.NewFromInt(60000)}

	plan := seq.Optimize(buckets, needs, household(65), opts)

	conv := plan.RothConversion
	assert.True(t, conv.Amount.Equal(decimal.NewFromInt(60000)),
		"budget is the binding cap, room and balance both exceed it")
	assert.True(t, conv.AdditionalTax.Equal(decimal.NewFromInt(13200)))
	assert.Equal(t, "Convert", conv.Recommendation)
	assert.Equal(t, 5, conv.BreakEvenYears)
}

func TestConversionCappedByRemainingBalance(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{TraditionalIRA: decimal.NewFromInt(100000)}
	needs := Needs{TargetSpending: decimal.NewFromInt(50000)}
	opts := Options{RothConversionBudget: decimal.NewFromInt(500000)}

	plan := seq.Optimize(buckets, needs, household(65), opts)

	assert.True(t, plan.RothConversion.Amount.Equal(decimal.NewFromInt(50000)),
		"only the balance left after withdrawals can convert")
}

func TestConversionSkippedWhenFutureRateLower(t *testing.T) {
	seq := newTestSequencer()
	buckets := domain.AccountBuckets{TraditionalIRA: decimal.NewFromInt(1000000)}
	needs := Needs{TargetSpending: decimal.NewFromInt(50000)}
	opts := Options{
		RothConversionBudget: decimal.NewFromInt(60000),
		FutureMarginalRate:   decimal.NewFromFloat(0.10),
	}

	plan := seq.Optimize(buckets, needs, household(65), opts)

	assert.Equal(t, "Skip", plan.RothConversion.Recommendation)
	assert.Equal(t, 999, plan.RothConversion.BreakEvenYears)
}

func TestNoConversionInTopBracket(t *testing.T) {
	seq := NewSequencer(
		stubTax{rate: decimal.NewFromFloat(0.37), top: true},
		stubRMD{factor: decimal.NewFromInt(25)},
	)
	buckets := domain.AccountBuckets{TraditionalIRA: decimal.NewFromInt(1000000)}
	needs := Needs{TargetSpending: decimal.NewFromInt(900000)}

	plan := seq.Optimize(buckets, needs, household(65), Options{RothConversionBudget: decimal.NewFromInt(60000)})

	assert.True(t, plan.RothConversion.Amount.IsZero())
	assert.Empty(t, plan.RothConversion.Recommendation)
}

func TestEfficiencyScore(t *testing.T) {
	t.Run("credits clamp at one hundred", func(t *testing.T) {
		seq := newTestSequencer()
		buckets := domain.AccountBuckets{
			Taxable:        decimal.NewFromInt(200000),
			TraditionalIRA: decimal.NewFromInt(500000),
		}
		needs := Needs{TargetSpending: decimal.NewFromInt(60000)}
		opts := Options{
			CharitableGiving: decimal.NewFromInt(5000),
			LossesAvailable:  decimal.NewFromInt(5000),
		}

		plan := seq.Optimize(buckets, needs, household(75), opts)

		require.True(t, plan.QCDUsed.GreaterThan(decimal.Zero))
		require.True(t, plan.TaxLossHarvested.GreaterThan(decimal.Zero))
		assert.True(t, plan.EfficiencyScore.Equal(decimal.NewFromInt(100)))
	})

	t.Run("heavy tax burden deducts", func(t *testing.T) {
		seq := NewSequencer(
			stubTax{rate: decimal.NewFromFloat(0.35), ceiling: decimal.NewFromInt(609350)},
			stubRMD{factor: decimal.NewFromInt(25)},
		)
		buckets := domain.AccountBuckets{TraditionalIRA: decimal.NewFromInt(5000000)}
		needs := Needs{TargetSpending: decimal.NewFromInt(400000)}

		plan := seq.Optimize(buckets, needs, household(65), Options{})

		assert.True(t, plan.EfficiencyScore.Equal(decimal.NewFromInt(95)),
			"ten points above the benchmark rate costs five")
	})
}
