package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeBreakdown carries the annual income components the tax engine
// consumes. All fields are non-negative currency amounts; validation happens
// at the scenario boundary, never inside the engine.
type IncomeBreakdown struct {
	OrdinaryIncome        decimal.Decimal `yaml:"ordinary_income" json:"ordinary_income"`
	LongTermCapitalGains  decimal.Decimal `yaml:"long_term_capital_gains" json:"long_term_capital_gains"`
	QualifiedDividends    decimal.Decimal `yaml:"qualified_dividends" json:"qualified_dividends"`
	SocialSecurity        decimal.Decimal `yaml:"social_security" json:"social_security"`
	RothDistributions     decimal.Decimal `yaml:"roth_distributions" json:"roth_distributions"`
	MunicipalBondInterest decimal.Decimal `yaml:"municipal_bond_interest" json:"municipal_bond_interest"`
}

// PreferentialIncome returns the portion taxed at long-term-gains rates.
func (ib IncomeBreakdown) PreferentialIncome() decimal.Decimal {
	return ib.LongTermCapitalGains.Add(ib.QualifiedDividends)
}

// IRMAAResult is the Medicare surcharge determination for one tax year.
type IRMAAResult struct {
	PartB       decimal.Decimal `json:"part_b"`
	PartD       decimal.Decimal `json:"part_d"`
	TotalAnnual decimal.Decimal `json:"total_annual"`
	Tier        int             `json:"tier"`
	MAGI        decimal.Decimal `json:"magi"`
}

// TaxResult is the complete output of one tax engine evaluation.
type TaxResult struct {
	AGI           decimal.Decimal `json:"agi"`
	MAGI          decimal.Decimal `json:"magi"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	TaxableSS     decimal.Decimal `json:"taxable_social_security"`

	FederalTax decimal.Decimal `json:"federal_tax"`
	StateTax   decimal.Decimal `json:"state_tax"`
	IRMAA      IRMAAResult     `json:"irmaa"`
	NIIT       decimal.Decimal `json:"niit"`

	TotalTax      decimal.Decimal `json:"total_tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"`
}
