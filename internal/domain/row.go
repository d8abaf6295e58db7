package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeSeriesRow is one emitted month of a projection. Tax fields are
// populated only on December rows; every other month carries zeros there.
type TimeSeriesRow struct {
	MonthIndex int       `json:"month_index"`
	MonthDate  time.Time `json:"month_date"`

	BalanceTaxable         decimal.Decimal `json:"balance_taxable"`
	BalanceTraditionalIRA  decimal.Decimal `json:"balance_ira_traditional"`
	BalanceTraditional401k decimal.Decimal `json:"balance_401k_traditional"`
	BalanceRothIRA         decimal.Decimal `json:"balance_ira_roth"`
	BalanceHSA             decimal.Decimal `json:"balance_hsa"`

	WithdrawalTaxable         decimal.Decimal `json:"withdrawal_taxable"`
	WithdrawalTraditionalIRA  decimal.Decimal `json:"withdrawal_ira_traditional"`
	WithdrawalTraditional401k decimal.Decimal `json:"withdrawal_401k_traditional"`
	WithdrawalRothIRA         decimal.Decimal `json:"withdrawal_ira_roth"`
	WithdrawalHSA             decimal.Decimal `json:"withdrawal_hsa"`

	Contributions decimal.Decimal `json:"contributions"`
	Growth        decimal.Decimal `json:"growth"`

	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetCashFlow      decimal.Decimal `json:"net_cash_flow"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`

	FederalTax     decimal.Decimal `json:"federal_tax"`
	StateTax       decimal.Decimal `json:"state_tax"`
	IRMAASurcharge decimal.Decimal `json:"irmaa_surcharge"`
	NIITTax        decimal.Decimal `json:"niit_tax"`
	TotalTax       decimal.Decimal `json:"total_tax"`

	AgePrimary   int    `json:"age_primary"`
	AgeSecondary int    `json:"age_secondary"`
	Notes        string `json:"notes,omitempty"`
}

// TotalBalance sums the five bucket balances on this row.
func (r TimeSeriesRow) TotalBalance() decimal.Decimal {
	total := r.BalanceTaxable
	total = total.Add(r.BalanceTraditionalIRA)
	total = total.Add(r.BalanceTraditional401k)
	total = total.Add(r.BalanceRothIRA)
	total = total.Add(r.BalanceHSA)
	return total
}

// SetBalances copies the bucket balances onto the row.
func (r *TimeSeriesRow) SetBalances(b AccountBuckets) {
	r.BalanceTaxable = b.Taxable
	r.BalanceTraditionalIRA = b.TraditionalIRA
	r.BalanceTraditional401k = b.Traditional401k
	r.BalanceRothIRA = b.RothIRA
	r.BalanceHSA = b.HSA
}

// SetWithdrawals copies a plan's per-bucket withdrawals onto the row.
func (r *TimeSeriesRow) SetWithdrawals(w map[AccountKind]decimal.Decimal) {
	for kind, amt := range w {
		switch kind {
		case AccountTaxable:
			r.WithdrawalTaxable = r.WithdrawalTaxable.Add(amt)
		case AccountTraditionalIRA:
			r.WithdrawalTraditionalIRA = r.WithdrawalTraditionalIRA.Add(amt)
		case AccountTraditional401k:
			r.WithdrawalTraditional401k = r.WithdrawalTraditional401k.Add(amt)
		case AccountRothIRA:
			r.WithdrawalRothIRA = r.WithdrawalRothIRA.Add(amt)
		case AccountHSA:
			r.WithdrawalHSA = r.WithdrawalHSA.Add(amt)
		}
		r.TotalWithdrawals = r.TotalWithdrawals.Add(amt)
	}
}
