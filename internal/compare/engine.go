package compare

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/calculation"
	"github.com/horizonfp/horizon/internal/domain"
)

// Engine runs the deterministic driver once per scenario and assembles the
// side-by-side summary.
type Engine struct {
	Calc *calculation.Engine
}

// NewEngine creates a comparison engine on top of a calculation engine.
func NewEngine(calc *calculation.Engine) *Engine {
	return &Engine{Calc: calc}
}

// CompareScenarios projects each named scenario against the shared household
// and reduces every run to its comparison metrics. An empty name list
// compares every scenario in the configuration.
func (e *Engine) CompareScenarios(ctx context.Context, config *domain.Configuration, names []string) (*domain.ScenarioComparison, error) {
	if len(names) == 0 {
		for _, sc := range config.Scenarios {
			names = append(names, sc.Name)
		}
	}

	comparison := &domain.ScenarioComparison{
		Scenarios: make([]domain.ScenarioSummary, 0, len(names)),
	}
	for _, name := range names {
		result, err := e.Calc.RunProjection(ctx, config, name)
		if err != nil {
			return nil, fmt.Errorf("failed to project scenario %s: %w", name, err)
		}
		comparison.Scenarios = append(comparison.Scenarios, Summarize(result))
	}

	comparison.Recommendations = GenerateRecommendations(comparison)
	return comparison, nil
}

// Summarize reduces a projection to its comparison metrics.
func Summarize(result *domain.ProjectionResult) domain.ScenarioSummary {
	return domain.ScenarioSummary{
		Name:             result.Scenario,
		TerminalWealth:   result.TerminalValue(),
		TotalTaxes:       result.TotalTaxesPaid(),
		FirstYearNetFlow: firstYearNetFlow(result),
		Depleted:         result.Depleted,
		MonthsSurvived:   result.MonthsSurvived,
	}
}

// firstYearNetFlow nets income against expenses and taxes across the first
// twelve rows. Taxes land on the December row, so a January start folds the
// first full tax settlement into year one.
func firstYearNetFlow(result *domain.ProjectionResult) decimal.Decimal {
	total := decimal.Zero
	for i, row := range result.Rows {
		if i >= 12 {
			break
		}
		total = total.Add(row.TotalIncome).Sub(row.TotalExpenses).Sub(row.TotalTax)
	}
	return total
}

// GenerateRecommendations derives advisory lines from a comparison. The
// first scenario is treated as the base the alternatives are measured
// against.
func GenerateRecommendations(comparison *domain.ScenarioComparison) []string {
	recommendations := []string{}
	if len(comparison.Scenarios) < 2 {
		return recommendations
	}
	base := comparison.Scenarios[0]

	bestWealth := base
	for _, alt := range comparison.Scenarios[1:] {
		if alt.TerminalWealth.GreaterThan(bestWealth.TerminalWealth) {
			bestWealth = alt
		}
	}
	if bestWealth.Name != base.Name {
		diff := bestWealth.TerminalWealth.Sub(base.TerminalWealth)
		recommendations = append(recommendations,
			"Best Wealth: "+bestWealth.Name+" ends $"+diff.StringFixed(0)+" ahead of "+base.Name)
	}

	lowestTax := base
	for _, alt := range comparison.Scenarios[1:] {
		if alt.TotalTaxes.LessThan(lowestTax.TotalTaxes) {
			lowestTax = alt
		}
	}
	if lowestTax.Name != base.Name {
		savings := base.TotalTaxes.Sub(lowestTax.TotalTaxes)
		recommendations = append(recommendations,
			"Lowest Taxes: "+lowestTax.Name+" saves $"+savings.StringFixed(0)+" in lifetime taxes")
	}

	longest := base
	for _, alt := range comparison.Scenarios[1:] {
		if outlasts(alt, longest) {
			longest = alt
		}
	}
	if longest.Name != base.Name {
		recommendations = append(recommendations,
			"Longest Runway: "+longest.Name+" keeps the portfolio funded longest")
	}

	return recommendations
}

// outlasts reports whether a keeps the portfolio funded longer than b. Any
// surviving scenario beats any depleted one.
func outlasts(a, b domain.ScenarioSummary) bool {
	if a.Depleted == b.Depleted {
		if !a.Depleted {
			return false
		}
		return a.MonthsSurvived > b.MonthsSurvived
	}
	return !a.Depleted
}
