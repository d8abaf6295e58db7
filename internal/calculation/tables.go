package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// Bracket tables for a tax year. Loaded once at process start and shared
// read-only; re-runs against the same snapshot are bit-identical.

// noCeiling is the open upper bound on the top tier of a bracketed schedule.
var noCeiling = decimal.NewFromInt(999999999999)

// SSThresholds are the combined-income tier boundaries for taxable Social
// Security, by filing status.
type SSThresholds struct {
	Base  decimal.Decimal
	Upper decimal.Decimal
}

// IRMAATier is one Medicare surcharge tier: the MAGI ceiling (inclusive) and
// the monthly Part B and Part D surcharges per Medicare-eligible person. The
// top tier carries the open ceiling sentinel.
type IRMAATier struct {
	MAGICeiling decimal.Decimal
	PartB       decimal.Decimal
	PartD       decimal.Decimal
}

// StateRuleKind tags the three state income tax shapes.
type StateRuleKind string

const (
	StateRuleNone        StateRuleKind = "none"
	StateRuleFlat        StateRuleKind = "flat"
	StateRuleProgressive StateRuleKind = "progressive"
)

// StateRule is the tagged state tax variant: no tax, a flat rate on taxable
// income, or progressive brackets per filing status.
type StateRule struct {
	Kind     StateRuleKind
	Rate     decimal.Decimal
	Brackets map[domain.FilingStatus][]TaxBracket
}

// TaxYearTables is the immutable bracket snapshot for one tax year.
type TaxYearTables struct {
	Year int

	Federal                map[domain.FilingStatus][]TaxBracket
	LTCG                   map[domain.FilingStatus][]TaxBracket
	StandardDeduction      map[domain.FilingStatus]decimal.Decimal
	AdditionalStdDeduction map[domain.FilingStatus]decimal.Decimal

	NIITRate      decimal.Decimal
	NIITThreshold map[domain.FilingStatus]decimal.Decimal

	IRMAA map[domain.FilingStatus][]IRMAATier

	SocialSecurity map[domain.FilingStatus]SSThresholds

	States map[string]StateRule

	RMDFactors map[int]decimal.Decimal
	RMDMaxAge  int
}

var taxYears = map[int]*TaxYearTables{
	2024: newTables2024(),
}

// LoadTaxYear returns the bracket snapshot for the given year.
func LoadTaxYear(year int) (*TaxYearTables, error) {
	tables, ok := taxYears[year]
	if !ok {
		return nil, &domain.ReferenceDataError{Kind: "tax year", Key: fmt.Sprintf("%d", year)}
	}
	return tables, nil
}

// FederalBrackets returns the seven-tier ordinary schedule for the status.
func (t *TaxYearTables) FederalBrackets(fs domain.FilingStatus) []TaxBracket {
	return t.Federal[fs]
}

// LTCGBrackets returns the three-tier preferential schedule for the status.
func (t *TaxYearTables) LTCGBrackets(fs domain.FilingStatus) []TaxBracket {
	return t.LTCG[fs]
}

// DeductionFor returns the standard deduction for the household: the base
// for its filing status plus the age-65 increment per qualifying taxpayer.
func (t *TaxYearTables) DeductionFor(household domain.Household) decimal.Decimal {
	deduction := t.StandardDeduction[household.FilingStatus]
	additional := t.AdditionalStdDeduction[household.FilingStatus]
	if household.Age1 >= 65 {
		deduction = deduction.Add(additional)
	}
	if household.Age2 >= 65 {
		deduction = deduction.Add(additional)
	}
	return deduction
}

// IRMAATiersFor returns the surcharge schedule for the status.
func (t *TaxYearTables) IRMAATiersFor(fs domain.FilingStatus) []IRMAATier {
	return t.IRMAA[fs]
}

// SSThresholdsFor returns the combined-income tier boundaries for the status.
func (t *TaxYearTables) SSThresholdsFor(fs domain.FilingStatus) SSThresholds {
	return t.SocialSecurity[fs]
}

// NIITThresholdFor returns the investment-surtax MAGI threshold for the status.
func (t *TaxYearTables) NIITThresholdFor(fs domain.FilingStatus) decimal.Decimal {
	return t.NIITThreshold[fs]
}

// StateRuleFor returns the registered rule for a two-letter state code.
func (t *TaxYearTables) StateRuleFor(state string) (StateRule, error) {
	rule, ok := t.States[state]
	if !ok {
		return StateRule{}, &domain.ReferenceDataError{Kind: "state rule", Key: state}
	}
	return rule, nil
}

// RMDFactor returns the Uniform Lifetime Table divisor for the age. Ages
// beyond the table clamp to the final factor; ages below the first RMD age
// have no factor.
func (t *TaxYearTables) RMDFactor(age int) (decimal.Decimal, bool) {
	if age > t.RMDMaxAge {
		age = t.RMDMaxAge
	}
	factor, ok := t.RMDFactors[age]
	return factor, ok
}

// MarginalRate returns the rate of the topmost federal bracket whose lower
// bound does not exceed taxable income.
func (t *TaxYearTables) MarginalRate(taxableIncome decimal.Decimal, fs domain.FilingStatus) decimal.Decimal {
	rate := decimal.Zero
	for _, bracket := range t.Federal[fs] {
		if taxableIncome.LessThan(bracket.Min) {
			break
		}
		rate = bracket.Rate
	}
	return rate
}

// NextBracketCeiling returns the upper bound of the federal bracket that
// contains taxable income. The boolean is false in the open top bracket.
func (t *TaxYearTables) NextBracketCeiling(taxableIncome decimal.Decimal, fs domain.FilingStatus) (decimal.Decimal, bool) {
	brackets := t.Federal[fs]
	for i, bracket := range brackets {
		if taxableIncome.GreaterThanOrEqual(bracket.Min) && taxableIncome.LessThan(bracket.Max) {
			if i == len(brackets)-1 {
				return decimal.Zero, false
			}
			return bracket.Max, true
		}
	}
	return decimal.Zero, false
}

func newTables2024() *TaxYearTables {
	single := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(11600), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(11600), decimal.NewFromInt(47150), decimal.NewFromFloat(0.12)},
		{decimal.NewFromInt(47150), decimal.NewFromInt(100525), decimal.NewFromFloat(0.22)},
		{decimal.NewFromInt(100525), decimal.NewFromInt(191950), decimal.NewFromFloat(0.24)},
		{decimal.NewFromInt(191950), decimal.NewFromInt(243725), decimal.NewFromFloat(0.32)},
		{decimal.NewFromInt(243725), decimal.NewFromInt(609350), decimal.NewFromFloat(0.35)},
		{decimal.NewFromInt(609350), noCeiling, decimal.NewFromFloat(0.37)},
	}
	joint := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(23200), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(23200), decimal.NewFromInt(94300), decimal.NewFromFloat(0.12)},
		{decimal.NewFromInt(94300), decimal.NewFromInt(201050), decimal.NewFromFloat(0.22)},
		{decimal.NewFromInt(201050), decimal.NewFromInt(383900), decimal.NewFromFloat(0.24)},
		{decimal.NewFromInt(383900), decimal.NewFromInt(487450), decimal.NewFromFloat(0.32)},
		{decimal.NewFromInt(487450), decimal.NewFromInt(731200), decimal.NewFromFloat(0.35)},
		{decimal.NewFromInt(731200), noCeiling, decimal.NewFromFloat(0.37)},
	}
	separate := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(11600), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(11600), decimal.NewFromInt(47150), decimal.NewFromFloat(0.12)},
		{decimal.NewFromInt(47150), decimal.NewFromInt(100525), decimal.NewFromFloat(0.22)},
		{decimal.NewFromInt(100525), decimal.NewFromInt(191950), decimal.NewFromFloat(0.24)},
		{decimal.NewFromInt(191950), decimal.NewFromInt(243725), decimal.NewFromFloat(0.32)},
		{decimal.NewFromInt(243725), decimal.NewFromInt(365600), decimal.NewFromFloat(0.35)},
		{decimal.NewFromInt(365600), noCeiling, decimal.NewFromFloat(0.37)},
	}
	headOfHousehold := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(16550), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(16550), decimal.NewFromInt(63100), decimal.NewFromFloat(0.12)},
		{decimal.NewFromInt(63100), decimal.NewFromInt(100500), decimal.NewFromFloat(0.22)},
		{decimal.NewFromInt(100500), decimal.NewFromInt(191950), decimal.NewFromFloat(0.24)},
		{decimal.NewFromInt(191950), decimal.NewFromInt(243700), decimal.NewFromFloat(0.32)},
		{decimal.NewFromInt(243700), decimal.NewFromInt(609350), decimal.NewFromFloat(0.35)},
		{decimal.NewFromInt(609350), noCeiling, decimal.NewFromFloat(0.37)},
	}

	ltcgSingle := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(47025), decimal.Zero},
		{decimal.NewFromInt(47025), decimal.NewFromInt(518900), decimal.NewFromFloat(0.15)},
		{decimal.NewFromInt(518900), noCeiling, decimal.NewFromFloat(0.20)},
	}
	ltcgJoint := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(94050), decimal.Zero},
		{decimal.NewFromInt(94050), decimal.NewFromInt(583750), decimal.NewFromFloat(0.15)},
		{decimal.NewFromInt(583750), noCeiling, decimal.NewFromFloat(0.20)},
	}
	ltcgSeparate := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(47025), decimal.Zero},
		{decimal.NewFromInt(47025), decimal.NewFromInt(291850), decimal.NewFromFloat(0.15)},
		{decimal.NewFromInt(291850), noCeiling, decimal.NewFromFloat(0.20)},
	}
	ltcgHeadOfHousehold := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(63000), decimal.Zero},
		{decimal.NewFromInt(63000), decimal.NewFromInt(551350), decimal.NewFromFloat(0.15)},
		{decimal.NewFromInt(551350), noCeiling, decimal.NewFromFloat(0.20)},
	}

	irmaaSingle := []IRMAATier{
		{decimal.NewFromInt(103000), decimal.Zero, decimal.Zero},
		{decimal.NewFromInt(129000), decimal.NewFromFloat(69.90), decimal.NewFromFloat(12.90)},
		{decimal.NewFromInt(161000), decimal.NewFromFloat(174.70), decimal.NewFromFloat(33.30)},
		{decimal.NewFromInt(193000), decimal.NewFromFloat(279.50), decimal.NewFromFloat(53.80)},
		{decimal.NewFromInt(500000), decimal.NewFromFloat(384.30), decimal.NewFromFloat(74.20)},
		{noCeiling, decimal.NewFromFloat(419.30), decimal.NewFromFloat(81.00)},
	}
	irmaaJoint := []IRMAATier{
		{decimal.NewFromInt(206000), decimal.Zero, decimal.Zero},
		{decimal.NewFromInt(258000), decimal.NewFromFloat(69.90), decimal.NewFromFloat(12.90)},
		{decimal.NewFromInt(322000), decimal.NewFromFloat(174.70), decimal.NewFromFloat(33.30)},
		{decimal.NewFromInt(386000), decimal.NewFromFloat(279.50), decimal.NewFromFloat(53.80)},
		{decimal.NewFromInt(750000), decimal.NewFromFloat(384.30), decimal.NewFromFloat(74.20)},
		{noCeiling, decimal.NewFromFloat(419.30), decimal.NewFromFloat(81.00)},
	}
	// Married-separate uses the compressed statutory schedule.
	irmaaSeparate := []IRMAATier{
		{decimal.NewFromInt(103000), decimal.Zero, decimal.Zero},
		{decimal.NewFromInt(397000), decimal.NewFromFloat(384.30), decimal.NewFromFloat(74.20)},
		{noCeiling, decimal.NewFromFloat(419.30), decimal.NewFromFloat(81.00)},
	}

	californiaSingle := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(10412), decimal.NewFromFloat(0.01)},
		{decimal.NewFromInt(10412), decimal.NewFromInt(24684), decimal.NewFromFloat(0.02)},
		{decimal.NewFromInt(24684), decimal.NewFromInt(38959), decimal.NewFromFloat(0.04)},
		{decimal.NewFromInt(38959), decimal.NewFromInt(54081), decimal.NewFromFloat(0.06)},
		{decimal.NewFromInt(54081), decimal.NewFromInt(68350), decimal.NewFromFloat(0.08)},
		{decimal.NewFromInt(68350), decimal.NewFromInt(349137), decimal.NewFromFloat(0.093)},
		{decimal.NewFromInt(349137), decimal.NewFromInt(418961), decimal.NewFromFloat(0.103)},
		{decimal.NewFromInt(418961), decimal.NewFromInt(698271), decimal.NewFromFloat(0.113)},
		{decimal.NewFromInt(698271), noCeiling, decimal.NewFromFloat(0.123)},
	}
	californiaJoint := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(20824), decimal.NewFromFloat(0.01)},
		{decimal.NewFromInt(20824), decimal.NewFromInt(49368), decimal.NewFromFloat(0.02)},
		{decimal.NewFromInt(49368), decimal.NewFromInt(77918), decimal.NewFromFloat(0.04)},
		{decimal.NewFromInt(77918), decimal.NewFromInt(108162), decimal.NewFromFloat(0.06)},
		{decimal.NewFromInt(108162), decimal.NewFromInt(136700), decimal.NewFromFloat(0.08)},
		{decimal.NewFromInt(136700), decimal.NewFromInt(698274), decimal.NewFromFloat(0.093)},
		{decimal.NewFromInt(698274), decimal.NewFromInt(837922), decimal.NewFromFloat(0.103)},
		{decimal.NewFromInt(837922), decimal.NewFromInt(1396542), decimal.NewFromFloat(0.113)},
		{decimal.NewFromInt(1396542), noCeiling, decimal.NewFromFloat(0.123)},
	}
	californiaHeadOfHousehold := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(20839), decimal.NewFromFloat(0.01)},
		{decimal.NewFromInt(20839), decimal.NewFromInt(49371), decimal.NewFromFloat(0.02)},
		{decimal.NewFromInt(49371), decimal.NewFromInt(63644), decimal.NewFromFloat(0.04)},
		{decimal.NewFromInt(63644), decimal.NewFromInt(78765), decimal.NewFromFloat(0.06)},
		{decimal.NewFromInt(78765), decimal.NewFromInt(93037), decimal.NewFromFloat(0.08)},
		{decimal.NewFromInt(93037), decimal.NewFromInt(474824), decimal.NewFromFloat(0.093)},
		{decimal.NewFromInt(474824), decimal.NewFromInt(569790), decimal.NewFromFloat(0.103)},
		{decimal.NewFromInt(569790), decimal.NewFromInt(949649), decimal.NewFromFloat(0.113)},
		{decimal.NewFromInt(949649), noCeiling, decimal.NewFromFloat(0.123)},
	}

	newYorkSingle := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(8500), decimal.NewFromFloat(0.04)},
		{decimal.NewFromInt(8500), decimal.NewFromInt(11700), decimal.NewFromFloat(0.045)},
		{decimal.NewFromInt(11700), decimal.NewFromInt(13900), decimal.NewFromFloat(0.0525)},
		{decimal.NewFromInt(13900), decimal.NewFromInt(80650), decimal.NewFromFloat(0.055)},
		{decimal.NewFromInt(80650), decimal.NewFromInt(215400), decimal.NewFromFloat(0.06)},
		{decimal.NewFromInt(215400), decimal.NewFromInt(1077550), decimal.NewFromFloat(0.0685)},
		{decimal.NewFromInt(1077550), decimal.NewFromInt(5000000), decimal.NewFromFloat(0.0965)},
		{decimal.NewFromInt(5000000), decimal.NewFromInt(25000000), decimal.NewFromFloat(0.103)},
		{decimal.NewFromInt(25000000), noCeiling, decimal.NewFromFloat(0.109)},
	}
	newYorkJoint := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(17150), decimal.NewFromFloat(0.04)},
		{decimal.NewFromInt(17150), decimal.NewFromInt(23600), decimal.NewFromFloat(0.045)},
		{decimal.NewFromInt(23600), decimal.NewFromInt(27900), decimal.NewFromFloat(0.0525)},
		{decimal.NewFromInt(27900), decimal.NewFromInt(161550), decimal.NewFromFloat(0.055)},
		{decimal.NewFromInt(161550), decimal.NewFromInt(323200), decimal.NewFromFloat(0.06)},
		{decimal.NewFromInt(323200), decimal.NewFromInt(2155350), decimal.NewFromFloat(0.0685)},
		{decimal.NewFromInt(2155350), decimal.NewFromInt(5000000), decimal.NewFromFloat(0.0965)},
		{decimal.NewFromInt(5000000), decimal.NewFromInt(25000000), decimal.NewFromFloat(0.103)},
		{decimal.NewFromInt(25000000), noCeiling, decimal.NewFromFloat(0.109)},
	}
	newYorkHeadOfHousehold := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(12800), decimal.NewFromFloat(0.04)},
		{decimal.NewFromInt(12800), decimal.NewFromInt(17650), decimal.NewFromFloat(0.045)},
		{decimal.NewFromInt(17650), decimal.NewFromInt(20900), decimal.NewFromFloat(0.0525)},
		{decimal.NewFromInt(20900), decimal.NewFromInt(107650), decimal.NewFromFloat(0.055)},
		{decimal.NewFromInt(107650), decimal.NewFromInt(269300), decimal.NewFromFloat(0.06)},
		{decimal.NewFromInt(269300), decimal.NewFromInt(1616450), decimal.NewFromFloat(0.0685)},
		{decimal.NewFromInt(1616450), decimal.NewFromInt(5000000), decimal.NewFromFloat(0.0965)},
		{decimal.NewFromInt(5000000), decimal.NewFromInt(25000000), decimal.NewFromFloat(0.103)},
		{decimal.NewFromInt(25000000), noCeiling, decimal.NewFromFloat(0.109)},
	}

	states := map[string]StateRule{
		"AK": {Kind: StateRuleNone},
		"FL": {Kind: StateRuleNone},
		"NV": {Kind: StateRuleNone},
		"NH": {Kind: StateRuleNone},
		"SD": {Kind: StateRuleNone},
		"TN": {Kind: StateRuleNone},
		"TX": {Kind: StateRuleNone},
		"WA": {Kind: StateRuleNone},
		"WY": {Kind: StateRuleNone},

		"AZ": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.025)},
		"CO": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.044)},
		"GA": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.0549)},
		"IL": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.0495)},
		"IN": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.0305)},
		"KY": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.04)},
		"MA": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.05)},
		"MI": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.0425)},
		"NC": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.045)},
		"PA": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.0307)},
		"UT": {Kind: StateRuleFlat, Rate: decimal.NewFromFloat(0.0465)},

		"CA": {Kind: StateRuleProgressive, Brackets: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:          californiaSingle,
			domain.FilingMarriedJoint:    californiaJoint,
			domain.FilingMarriedSeparate: californiaSingle,
			domain.FilingHeadOfHousehold: californiaHeadOfHousehold,
		}},
		"NY": {Kind: StateRuleProgressive, Brackets: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:          newYorkSingle,
			domain.FilingMarriedJoint:    newYorkJoint,
			domain.FilingMarriedSeparate: newYorkSingle,
			domain.FilingHeadOfHousehold: newYorkHeadOfHousehold,
		}},
	}

	rmdFactors := map[int]decimal.Decimal{
		73:  decimal.NewFromFloat(26.5),
		74:  decimal.NewFromFloat(25.5),
		75:  decimal.NewFromFloat(24.6),
		76:  decimal.NewFromFloat(23.7),
		77:  decimal.NewFromFloat(22.9),
		78:  decimal.NewFromFloat(22.0),
		79:  decimal.NewFromFloat(21.1),
		80:  decimal.NewFromFloat(20.2),
		81:  decimal.NewFromFloat(19.4),
		82:  decimal.NewFromFloat(18.5),
		83:  decimal.NewFromFloat(17.7),
		84:  decimal.NewFromFloat(16.8),
		85:  decimal.NewFromFloat(16.0),
		86:  decimal.NewFromFloat(15.2),
		87:  decimal.NewFromFloat(14.4),
		88:  decimal.NewFromFloat(13.7),
		89:  decimal.NewFromFloat(12.9),
		90:  decimal.NewFromFloat(12.2),
		91:  decimal.NewFromFloat(11.5),
		92:  decimal.NewFromFloat(10.8),
		93:  decimal.NewFromFloat(10.1),
		94:  decimal.NewFromFloat(9.5),
		95:  decimal.NewFromFloat(9.0),
		96:  decimal.NewFromFloat(8.4),
		97:  decimal.NewFromFloat(7.8),
		98:  decimal.NewFromFloat(7.3),
		99:  decimal.NewFromFloat(6.8),
		100: decimal.NewFromFloat(6.4),
	}

	return &TaxYearTables{
		Year: 2024,
		Federal: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:          single,
			domain.FilingMarriedJoint:    joint,
			domain.FilingMarriedSeparate: separate,
			domain.FilingHeadOfHousehold: headOfHousehold,
		},
		LTCG: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:          ltcgSingle,
			domain.FilingMarriedJoint:    ltcgJoint,
			domain.FilingMarriedSeparate: ltcgSeparate,
			domain.FilingHeadOfHousehold: ltcgHeadOfHousehold,
		},
		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          decimal.NewFromInt(14600),
			domain.FilingMarriedJoint:    decimal.NewFromInt(29200),
			domain.FilingMarriedSeparate: decimal.NewFromInt(14600),
			domain.FilingHeadOfHousehold: decimal.NewFromInt(21900),
		},
		AdditionalStdDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          decimal.NewFromInt(1950),
			domain.FilingMarriedJoint:    decimal.NewFromInt(1550),
			domain.FilingMarriedSeparate: decimal.NewFromInt(1550),
			domain.FilingHeadOfHousehold: decimal.NewFromInt(1950),
		},
		NIITRate: decimal.NewFromFloat(0.038),
		NIITThreshold: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          decimal.NewFromInt(200000),
			domain.FilingMarriedJoint:    decimal.NewFromInt(250000),
			domain.FilingMarriedSeparate: decimal.NewFromInt(125000),
			domain.FilingHeadOfHousehold: decimal.NewFromInt(200000),
		},
		IRMAA: map[domain.FilingStatus][]IRMAATier{
			domain.FilingSingle:          irmaaSingle,
			domain.FilingMarriedJoint:    irmaaJoint,
			domain.FilingMarriedSeparate: irmaaSeparate,
			domain.FilingHeadOfHousehold: irmaaSingle,
		},
		SocialSecurity: map[domain.FilingStatus]SSThresholds{
			domain.FilingSingle:          {Base: decimal.NewFromInt(25000), Upper: decimal.NewFromInt(34000)},
			domain.FilingMarriedJoint:    {Base: decimal.NewFromInt(32000), Upper: decimal.NewFromInt(44000)},
			domain.FilingMarriedSeparate: {Base: decimal.NewFromInt(25000), Upper: decimal.NewFromInt(34000)},
			domain.FilingHeadOfHousehold: {Base: decimal.NewFromInt(25000), Upper: decimal.NewFromInt(34000)},
		},
		States:     states,
		RMDFactors: rmdFactors,
		RMDMaxAge:  100,
	}
}
