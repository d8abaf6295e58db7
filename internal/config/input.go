package config

import (
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/horizonfp/horizon/internal/domain"
)

// InputParser handles parsing of scenario payload files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a configuration payload, fills defaults, and validates the
// structure. Semantic checks that need reference data (state rules, bracket
// tables, member ages) run later in the calculation layer.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// applyDefaults fills the per-scenario knobs a payload may omit.
func (ip *InputParser) applyDefaults(config *domain.Configuration) {
	for i := range config.Scenarios {
		a := &config.Scenarios[i].Assumptions
		if a.TaxYear == 0 {
			a.TaxYear = domain.DefaultTaxYear
		}
		if a.HorizonMonths == 0 {
			a.HorizonMonths = domain.DefaultHorizonMonths
		}
		if a.NumPaths == 0 {
			a.NumPaths = domain.DefaultNumPaths
		}
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateHousehold(&config.Household); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}
	if err := ip.validateAccounts(config.Accounts); err != nil {
		return fmt.Errorf("account validation failed: %w", err)
	}

	for _, stream := range config.IncomeStreams {
		if err := stream.Validate(true); err != nil {
			return fmt.Errorf("income stream validation failed: %w", err)
		}
	}
	for _, stream := range config.ExpenseStreams {
		if err := stream.Validate(false); err != nil {
			return fmt.Errorf("expense stream validation failed: %w", err)
		}
	}
	for _, goal := range config.Goals {
		if goal.Name == "" {
			return domain.NewValidationError("goals", "goal name is required")
		}
		if goal.Amount.IsNegative() {
			return domain.NewValidationError("goals", "goal %q: amount cannot be negative", goal.Name)
		}
	}

	if len(config.Scenarios) == 0 {
		return domain.NewValidationError("scenarios", "no scenarios provided")
	}
	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(i, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return domain.NewValidationError("scenarios", "duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}
	return nil
}

// validateHousehold validates the shared household block
func (ip *InputParser) validateHousehold(household *domain.HouseholdProfile) error {
	if household.State == "" {
		return domain.NewValidationError("household.state", "state is required")
	}
	if !household.FilingStatus.IsValid() {
		return domain.NewValidationError("household.filing_status",
			"unknown filing status %q", household.FilingStatus)
	}
	if len(household.Members) == 0 {
		return domain.NewValidationError("household.members", "at least one member is required")
	}
	for i, member := range household.Members {
		if member.Name == "" {
			return domain.NewValidationError("household.members", "member %d: name is required", i)
		}
		if member.BirthDate.IsZero() {
			return domain.NewValidationError("household.members",
				"member %q: birth date is required", member.Name)
		}
	}
	if household.Dependents < 0 {
		return domain.NewValidationError("household.dependents", "dependents cannot be negative")
	}
	return nil
}

// validateAccounts validates the opening balances
func (ip *InputParser) validateAccounts(accounts domain.AccountBuckets) error {
	for _, kind := range domain.AllAccountKinds {
		if accounts.Balance(kind).IsNegative() {
			return domain.NewValidationError("accounts."+string(kind), "balance cannot be negative")
		}
	}
	return nil
}

// validateScenario validates a single scenario block
func (ip *InputParser) validateScenario(index int, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return domain.NewValidationError(fmt.Sprintf("scenarios[%d].name", index),
			"scenario name is required")
	}

	a := scenario.Assumptions
	if a.ValuationDate.IsZero() {
		return domain.NewValidationError("assumptions.valuation_date", "valuation date is required")
	}
	if a.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return domain.NewValidationError("assumptions.inflation_rate",
			"inflation rate cannot be less than -10%% (extreme deflation)")
	}
	if a.HealthcareInflation.IsNegative() {
		return domain.NewValidationError("assumptions.healthcare_inflation",
			"healthcare inflation cannot be negative")
	}
	if a.FutureMarginalRate.IsNegative() || a.FutureMarginalRate.GreaterThan(decimal.NewFromInt(1)) {
		return domain.NewValidationError("assumptions.future_marginal_rate",
			"future marginal rate must be between 0 and 1")
	}
	if err := ip.validateAllocation(a.Allocation); err != nil {
		return err
	}

	p := scenario.Planning
	if p.CharitableGiving.IsNegative() {
		return domain.NewValidationError("planning.charitable_giving",
			"charitable giving cannot be negative")
	}
	if p.RothConversionBudget.IsNegative() {
		return domain.NewValidationError("planning.roth_conversion_budget",
			"conversion budget cannot be negative")
	}
	if p.TaxLossesAvailable.IsNegative() {
		return domain.NewValidationError("planning.tax_losses_available",
			"tax losses cannot be negative")
	}
	return nil
}

// validateAllocation checks that portfolio weights form a unit simplex
func (ip *InputParser) validateAllocation(allocation []float64) error {
	if len(allocation) == 0 {
		return nil
	}
	sum := 0.0
	for i, weight := range allocation {
		if weight < 0 || weight > 1 {
			return domain.NewValidationError("assumptions.allocation",
				"weight %d is %v, must be between 0 and 1", i, weight)
		}
		sum += weight
	}
	if math.Abs(sum-1) > 1e-6 {
		return domain.NewValidationError("assumptions.allocation",
			"weights sum to %v, must sum to 1", sum)
	}
	return nil
}

// LoadEnvironment loads variables from a .env file into the process
// environment. A missing file is fine; deployed environments inject
// variables directly.
func LoadEnvironment(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// DatabaseURL returns the persistence DSN from the environment, empty when
// persistence is not configured.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}
