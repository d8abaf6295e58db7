package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HouseholdProfile is the scenario-level household: members with birth dates
// rather than point-in-time ages.
type HouseholdProfile struct {
	State        string       `yaml:"state" json:"state"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filing_status"`
	Members      []Member     `yaml:"members" json:"members"`
	Dependents   int          `yaml:"dependents" json:"dependents"`
}

// At derives the tax-engine household profile with ages as of the given date.
func (hp HouseholdProfile) At(date time.Time) Household {
	h := Household{
		State:        hp.State,
		FilingStatus: hp.FilingStatus,
		Dependents:   hp.Dependents,
	}
	if len(hp.Members) > 0 {
		h.Age1 = hp.Members[0].AgeOn(date)
	}
	if len(hp.Members) > 1 {
		h.Age2 = hp.Members[1].AgeOn(date)
	}
	return h
}

// PlanningOptions are the optional sequencer levers for a scenario.
type PlanningOptions struct {
	CharitableGiving     decimal.Decimal `yaml:"charitable_giving" json:"charitable_giving"`
	RothConversionBudget decimal.Decimal `yaml:"roth_conversion_budget" json:"roth_conversion_budget"`
	AllowRothWithdrawals bool            `yaml:"allow_roth_withdrawals" json:"allow_roth_withdrawals"`
	TaxLossesAvailable   decimal.Decimal `yaml:"tax_losses_available" json:"tax_losses_available"`
}

// Goal is an informational funding target surfaced alongside shortfalls.
type Goal struct {
	Name       string          `yaml:"name" json:"name"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	TargetDate time.Time       `yaml:"target_date" json:"target_date"`
}

// Scenario is one named run setup: assumptions plus planning levers. The
// household, accounts, and streams are shared across scenarios.
type Scenario struct {
	Name        string          `yaml:"name" json:"name"`
	Assumptions Assumptions     `yaml:"assumptions" json:"assumptions"`
	Planning    PlanningOptions `yaml:"planning" json:"planning"`
}

// Configuration is the full scenario payload consumed from the persistence
// layer: one household with accounts and streams, and one or more scenarios
// to run against them.
type Configuration struct {
	Household      HouseholdProfile `yaml:"household" json:"household"`
	Accounts       AccountBuckets   `yaml:"accounts" json:"accounts"`
	IncomeStreams  []Stream         `yaml:"income_streams" json:"income_streams"`
	ExpenseStreams []Stream         `yaml:"expense_streams" json:"expense_streams"`
	Goals          []Goal           `yaml:"goals,omitempty" json:"goals,omitempty"`
	ReturnModel    ReturnModel      `yaml:"return_model" json:"return_model"`
	Scenarios      []Scenario       `yaml:"scenarios" json:"scenarios"`
}

// ScenarioByName returns the named scenario, or the first one when name is
// empty. The boolean reports whether a scenario was found.
func (c *Configuration) ScenarioByName(name string) (Scenario, bool) {
	if name == "" && len(c.Scenarios) > 0 {
		return c.Scenarios[0], true
	}
	for _, sc := range c.Scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}
