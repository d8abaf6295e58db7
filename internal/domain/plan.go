package domain

import (
	"github.com/shopspring/decimal"
)

// RothConversion is the sequencer's conversion proposal for one year.
type RothConversion struct {
	Amount         decimal.Decimal `json:"amount"`
	AdditionalTax  decimal.Decimal `json:"additional_tax"`
	BreakEvenYears int             `json:"break_even_years"`
	Recommendation string          `json:"recommendation"`
}

// WithdrawalPlan is the sequencer output for one year. Withdrawals include
// the required minimum distributions seeded in phase one.
type WithdrawalPlan struct {
	Withdrawals      map[AccountKind]decimal.Decimal `json:"withdrawals"`
	RMDs             map[AccountKind]decimal.Decimal `json:"rmds"`
	QCDUsed          decimal.Decimal                 `json:"qcd_used"`
	TaxLossHarvested decimal.Decimal                 `json:"tax_loss_harvested"`
	RothConversion   RothConversion                  `json:"roth_conversion"`
	Shortfall        decimal.Decimal                 `json:"shortfall"`
	EfficiencyScore  decimal.Decimal                 `json:"efficiency_score"`

	// Income is the synthesized breakdown fed to the tax engine; Tax is the
	// engine's evaluation of it.
	Income IncomeBreakdown `json:"income"`
	Tax    TaxResult       `json:"tax"`

	Notes []string `json:"notes,omitempty"`
}

// TotalWithdrawals sums the planned gross withdrawals across buckets.
func (p WithdrawalPlan) TotalWithdrawals() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range p.Withdrawals {
		total = total.Add(amt)
	}
	return total
}

// TotalRMDs sums the required distributions across buckets.
func (p WithdrawalPlan) TotalRMDs() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range p.RMDs {
		total = total.Add(amt)
	}
	return total
}
