package calculation

import (
	"github.com/horizonfp/horizon/internal/domain"
)

const (
	maxMemberAge     = 120
	maxHorizonMonths = 1200
	maxPaths         = 1000000
)

// ValidateConfiguration rejects bad input at the scenario boundary, before
// any computation runs. Zero horizon and zero path counts pass; they mean
// "use the default".
func ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return domain.NewValidationError("configuration", "configuration is required")
	}
	hh := config.Household
	if !hh.FilingStatus.IsValid() {
		return domain.NewValidationError("household.filing_status", "unknown filing status %q", hh.FilingStatus)
	}
	if len(hh.Members) == 0 {
		return domain.NewValidationError("household.members", "at least one member is required")
	}

	for _, kind := range domain.AllAccountKinds {
		if config.Accounts.Balance(kind).IsNegative() {
			return domain.NewValidationError("accounts."+string(kind), "balance cannot be negative")
		}
	}
	for _, stream := range config.IncomeStreams {
		if err := stream.Validate(true); err != nil {
			return domain.NewValidationError("income_streams", "%v", err)
		}
	}
	for _, stream := range config.ExpenseStreams {
		if err := stream.Validate(false); err != nil {
			return domain.NewValidationError("expense_streams", "%v", err)
		}
	}
	for _, goal := range config.Goals {
		if goal.Amount.IsNegative() {
			return domain.NewValidationError("goals", "goal %q: amount cannot be negative", goal.Name)
		}
	}

	if len(config.Scenarios) == 0 {
		return domain.NewValidationError("scenarios", "at least one scenario is required")
	}
	for _, scenario := range config.Scenarios {
		if err := validateScenario(config, scenario); err != nil {
			return err
		}
	}
	return nil
}

func validateScenario(config *domain.Configuration, scenario domain.Scenario) error {
	a := scenario.Assumptions
	if a.HorizonMonths < 0 || a.HorizonMonths > maxHorizonMonths {
		return domain.NewValidationError("assumptions.horizon_months",
			"scenario %q: %d months outside [1, %d]", scenario.Name, a.HorizonMonths, maxHorizonMonths)
	}
	if a.NumPaths < 0 || a.NumPaths > maxPaths {
		return domain.NewValidationError("assumptions.num_paths",
			"scenario %q: %d paths outside [1, %d]", scenario.Name, a.NumPaths, maxPaths)
	}

	year := a.TaxYear
	if year == 0 {
		year = domain.DefaultTaxYear
	}
	tables, err := LoadTaxYear(year)
	if err != nil {
		return err
	}
	if _, err := tables.StateRuleFor(config.Household.State); err != nil {
		return domain.NewValidationError("household.state", "unknown state code %q", config.Household.State)
	}

	if !a.ValuationDate.IsZero() {
		for _, member := range config.Household.Members {
			age := member.AgeOn(a.ValuationDate)
			if age < 0 || age > maxMemberAge {
				return domain.NewValidationError("household.members",
					"member %q: age %d outside [0, %d]", member.Name, age, maxMemberAge)
			}
		}
	}
	return nil
}
