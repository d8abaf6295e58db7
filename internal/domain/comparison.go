package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioSummary condenses one deterministic projection for side-by-side
// comparison.
type ScenarioSummary struct {
	Name             string          `json:"name"`
	TerminalWealth   decimal.Decimal `json:"terminal_wealth"`
	TotalTaxes       decimal.Decimal `json:"total_taxes"`
	FirstYearNetFlow decimal.Decimal `json:"first_year_net_flow"`
	Depleted         bool            `json:"depleted"`
	MonthsSurvived   int             `json:"months_survived"`
}

// ScenarioComparison is the outcome of running every scenario in a payload
// against the same household.
type ScenarioComparison struct {
	Scenarios       []ScenarioSummary `json:"scenarios"`
	Recommendations []string          `json:"recommendations,omitempty"`
}

// Best returns the name of the scenario with the highest terminal wealth,
// empty when there are no scenarios.
func (sc ScenarioComparison) Best() string {
	best := ""
	top := decimal.Zero
	for i, s := range sc.Scenarios {
		if i == 0 || s.TerminalWealth.GreaterThan(top) {
			best = s.Name
			top = s.TerminalWealth
		}
	}
	return best
}
