package config

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// ApplyOverrides applies "key=value" pairs from the command line onto the
// configuration before a run. Assumption keys touch the named scenario, or
// every scenario when name is empty; return-model keys touch the shared
// model. Unknown keys and unparseable values are validation errors.
//
// Supported keys: inflation_rate, healthcare_inflation, tax_alpha,
// future_marginal_rate, tax_year, horizon_months, num_paths, seed,
// scalar_mean, scalar_vol.
func ApplyOverrides(config *domain.Configuration, scenarioName string, pairs []string) error {
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return domain.NewValidationError("set",
				"invalid override format, expected 'key=value', got %q", pair)
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		if err := applyOverride(config, scenarioName, key, value); err != nil {
			return err
		}
	}
	return nil
}

func applyOverride(config *domain.Configuration, scenarioName, key, value string) error {
	switch key {
	case "scalar_mean", "scalar_vol":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return parseError(key, value)
		}
		if key == "scalar_mean" {
			config.ReturnModel.ScalarMean = parsed
		} else {
			config.ReturnModel.ScalarVol = parsed
		}
		return nil
	}

	applied := false
	for i := range config.Scenarios {
		if scenarioName != "" && config.Scenarios[i].Name != scenarioName {
			continue
		}
		if err := applyAssumptionOverride(&config.Scenarios[i].Assumptions, key, value); err != nil {
			return err
		}
		applied = true
	}
	if !applied {
		return domain.NewValidationError("set", "no scenario named %q to override", scenarioName)
	}
	return nil
}

func applyAssumptionOverride(a *domain.Assumptions, key, value string) error {
	switch key {
	case "inflation_rate", "healthcare_inflation", "tax_alpha", "future_marginal_rate":
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return parseError(key, value)
		}
		switch key {
		case "inflation_rate":
			a.InflationRate = parsed
		case "healthcare_inflation":
			a.HealthcareInflation = parsed
		case "tax_alpha":
			a.TaxAlpha = parsed
		case "future_marginal_rate":
			a.FutureMarginalRate = parsed
		}
	case "tax_year", "horizon_months", "num_paths":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return parseError(key, value)
		}
		switch key {
		case "tax_year":
			a.TaxYear = parsed
		case "horizon_months":
			a.HorizonMonths = parsed
		case "num_paths":
			a.NumPaths = parsed
		}
	case "seed":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return parseError(key, value)
		}
		a.Seed = parsed
	default:
		return domain.NewValidationError("set", "unknown override key %q", key)
	}
	return nil
}

func parseError(key, value string) error {
	return domain.NewValidationError("set."+key, "cannot parse %q", value)
}
