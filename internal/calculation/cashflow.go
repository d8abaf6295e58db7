package calculation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// MonthFlows is one month of stream cash with income split by tax character.
type MonthFlows struct {
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	Ordinary       decimal.Decimal
	CapitalGains   decimal.Decimal
	SocialSecurity decimal.Decimal
	TaxFree        decimal.Decimal
}

// Net is income minus expenses for the month.
func (f MonthFlows) Net() decimal.Decimal {
	return f.Income.Sub(f.Expenses)
}

// Accumulate adds another month into a running total.
func (f *MonthFlows) Accumulate(other MonthFlows) {
	f.Income = f.Income.Add(other.Income)
	f.Expenses = f.Expenses.Add(other.Expenses)
	f.Ordinary = f.Ordinary.Add(other.Ordinary)
	f.CapitalGains = f.CapitalGains.Add(other.CapitalGains)
	f.SocialSecurity = f.SocialSecurity.Add(other.SocialSecurity)
	f.TaxFree = f.TaxFree.Add(other.TaxFree)
}

// CashFlowAggregator evaluates income and expense streams month by month.
// The same (streams, month) pair always produces the same flows.
type CashFlowAggregator struct {
	assumptions domain.Assumptions
	anchor      time.Time
}

// NewCashFlowAggregator creates an aggregator anchored at the first of the
// valuation month.
func NewCashFlowAggregator(assumptions domain.Assumptions) *CashFlowAggregator {
	return &CashFlowAggregator{
		assumptions: assumptions,
		anchor:      assumptions.MonthDate(0),
	}
}

// MonthlyCashFlow sums every active stream at the given month index.
func (c *CashFlowAggregator) MonthlyCashFlow(income, expenses []domain.Stream, monthIndex int) MonthFlows {
	var flows MonthFlows
	for _, stream := range income {
		amount := c.streamAmount(stream, monthIndex)
		if amount.IsZero() {
			continue
		}
		flows.Income = flows.Income.Add(amount)
		switch stream.TaxCharacter {
		case domain.TaxCharacterCapitalGains:
			flows.CapitalGains = flows.CapitalGains.Add(amount)
		case domain.TaxCharacterSocialSecurity:
			flows.SocialSecurity = flows.SocialSecurity.Add(amount)
		case domain.TaxCharacterTaxFree:
			flows.TaxFree = flows.TaxFree.Add(amount)
		default:
			flows.Ordinary = flows.Ordinary.Add(amount)
		}
	}
	for _, stream := range expenses {
		// Healthcare costs outpace general inflation; streams that carry no
		// growth assumption of their own inherit the scenario's rate.
		if stream.GrowthRate.IsZero() && !stream.InflationIndexed && isHealthcareStream(stream) {
			stream.GrowthRate = c.assumptions.HealthcareInflation
		}
		flows.Expenses = flows.Expenses.Add(c.streamAmount(stream, monthIndex))
	}
	return flows
}

// isHealthcareStream trusts an explicit category; only unlabeled streams
// are inferred from the name.
func isHealthcareStream(stream domain.Stream) bool {
	switch stream.Category {
	case domain.StreamCategoryHealthcare:
		return true
	case domain.StreamCategoryGeneral:
		return false
	}
	lower := strings.ToLower(stream.Name)
	return strings.Contains(lower, "health") ||
		strings.Contains(lower, "medical") ||
		strings.Contains(lower, "medicare")
}

// streamAmount is one stream's contribution at one month: zero outside its
// active window, normalized to a monthly amount, indexed by whole years
// elapsed since the stream began.
func (c *CashFlowAggregator) streamAmount(stream domain.Stream, monthIndex int) decimal.Decimal {
	start := monthsBetween(c.anchor, stream.StartDate)
	if monthIndex < start {
		return decimal.Zero
	}
	if stream.EndDate != nil && monthIndex > monthsBetween(c.anchor, *stream.EndDate) {
		return decimal.Zero
	}

	var monthly decimal.Decimal
	switch stream.Frequency {
	case domain.FrequencyMonthly:
		monthly = stream.BaseAmount
	case domain.FrequencyAnnual:
		monthly = stream.BaseAmount.Div(decimalTwelve)
	case domain.FrequencyQuarterly:
		monthly = stream.BaseAmount.Div(decimalThree)
	case domain.FrequencyOneTime:
		if monthIndex != start {
			return decimal.Zero
		}
		monthly = stream.BaseAmount
	default:
		return decimal.Zero
	}

	rate := stream.GrowthRate
	if stream.InflationIndexed {
		rate = c.assumptions.InflationRate
	}
	if years := (monthIndex - start) / 12; years > 0 && !rate.IsZero() {
		monthly = monthly.Mul(onePlus(rate).Pow(decimal.NewFromInt(int64(years))))
	}
	return monthly
}

// monthsBetween counts calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
