package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// TaxEngine composes the bracket tables into a single CalculateTax entry
// point. The engine is pure and total: it never fails, treats every input
// field as non-negative currency, and is safe to call concurrently.
type TaxEngine struct {
	Tables *TaxYearTables
}

// NewTaxEngine creates a tax engine over the given bracket snapshot.
func NewTaxEngine(tables *TaxYearTables) *TaxEngine {
	return &TaxEngine{Tables: tables}
}

// CalculateTax evaluates the household's annual tax position: federal tax
// with preferential-rate stacking, state tax, IRMAA, NIIT, and the taxable
// portion of Social Security.
func (te *TaxEngine) CalculateTax(income domain.IncomeBreakdown, household domain.Household) domain.TaxResult {
	income = sanitizeIncome(income)

	taxableSS := te.taxableSocialSecurity(income, household.FilingStatus)

	agi := income.OrdinaryIncome.
		Add(income.LongTermCapitalGains).
		Add(income.QualifiedDividends).
		Add(taxableSS)

	magi := agi.Add(income.MunicipalBondInterest).Add(income.RothDistributions)

	deduction := te.Tables.DeductionFor(household)
	taxableIncome := decimal.Max(decimal.Zero, agi.Sub(deduction))

	federalTax := te.federalTax(taxableIncome, income.PreferentialIncome(), household.FilingStatus)
	stateTax := te.stateTax(taxableIncome, household)
	irmaa := te.calculateIRMAA(magi, household)
	niit := te.calculateNIIT(agi, income.PreferentialIncome(), household.FilingStatus)

	totalTax := federalTax.Add(stateTax).Add(irmaa.TotalAnnual).Add(niit)

	effectiveRate := decimal.Zero
	if agi.GreaterThan(decimal.Zero) {
		effectiveRate = totalTax.Div(agi)
	}

	return domain.TaxResult{
		AGI:           agi,
		MAGI:          magi,
		TaxableIncome: taxableIncome,
		TaxableSS:     taxableSS,
		FederalTax:    federalTax,
		StateTax:      stateTax,
		IRMAA:         irmaa,
		NIIT:          niit,
		TotalTax:      totalTax,
		EffectiveRate: effectiveRate,
		MarginalRate:  te.Tables.MarginalRate(taxableIncome, household.FilingStatus),
	}
}

// NextBracketCeiling reports the ceiling of the federal bracket the given
// taxable income falls in, or false when it is already in the top bracket.
func (te *TaxEngine) NextBracketCeiling(taxableIncome decimal.Decimal, fs domain.FilingStatus) (decimal.Decimal, bool) {
	return te.Tables.NextBracketCeiling(taxableIncome, fs)
}

// federalTax taxes the ordinary portion through the regular brackets and
// stacks preferential income on top of it across the LTCG brackets, so the
// 0%/15%/20% split is correct when ordinary income straddles a threshold.
func (te *TaxEngine) federalTax(taxableIncome, preferentialIncome decimal.Decimal, fs domain.FilingStatus) decimal.Decimal {
	preferential := decimal.Min(preferentialIncome, taxableIncome)
	ordinary := taxableIncome.Sub(preferential)

	tax := bracketTax(te.Tables.FederalBrackets(fs), ordinary)

	stackTop := ordinary.Add(preferential)
	for _, bracket := range te.Tables.LTCGBrackets(fs) {
		lower := decimal.Max(ordinary, bracket.Min)
		upper := decimal.Min(stackTop, bracket.Max)
		if upper.GreaterThan(lower) {
			tax = tax.Add(upper.Sub(lower).Mul(bracket.Rate))
		}
	}
	return tax
}

// bracketTax walks a bracket schedule bottom-up with a running remainder.
func bracketTax(brackets []TaxBracket, taxableIncome decimal.Decimal) decimal.Decimal {
	var totalTax decimal.Decimal
	for _, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		incomeInBracket := decimal.Min(taxableIncome, bracket.Max).Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}
	return totalTax
}

// TaxBracket represents one tier of a bracketed schedule. Min is inclusive,
// Max exclusive; consecutive tiers share a boundary.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

func sanitizeIncome(income domain.IncomeBreakdown) domain.IncomeBreakdown {
	income.OrdinaryIncome = nonNegative(income.OrdinaryIncome)
	income.LongTermCapitalGains = nonNegative(income.LongTermCapitalGains)
	income.QualifiedDividends = nonNegative(income.QualifiedDividends)
	income.SocialSecurity = nonNegative(income.SocialSecurity)
	income.RothDistributions = nonNegative(income.RothDistributions)
	income.MunicipalBondInterest = nonNegative(income.MunicipalBondInterest)
	return income
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
