package config

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfp/horizon/internal/domain"
)

func twoScenarioConfig() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "base"},
			{Name: "aggressive"},
		},
	}
}

func TestApplyOverridesNamedScenario(t *testing.T) {
	config := twoScenarioConfig()

	err := ApplyOverrides(config, "aggressive", []string{
		"inflation_rate=0.04",
		"horizon_months=120",
		"seed=99",
	})

	require.NoError(t, err)
	assert.True(t, config.Scenarios[1].Assumptions.InflationRate.Equal(decimal.NewFromFloat(0.04)))
	assert.Equal(t, 120, config.Scenarios[1].Assumptions.HorizonMonths)
	assert.Equal(t, int64(99), config.Scenarios[1].Assumptions.Seed)

	assert.True(t, config.Scenarios[0].Assumptions.InflationRate.IsZero(),
		"the base scenario is untouched")
	assert.Zero(t, config.Scenarios[0].Assumptions.HorizonMonths)
}

func TestApplyOverridesAllScenarios(t *testing.T) {
	config := twoScenarioConfig()

	err := ApplyOverrides(config, "", []string{"num_paths=500", "tax_alpha=0.01"})

	require.NoError(t, err)
	for i := range config.Scenarios {
		assert.Equal(t, 500, config.Scenarios[i].Assumptions.NumPaths, "scenario %d", i)
		assert.True(t, config.Scenarios[i].Assumptions.TaxAlpha.Equal(decimal.NewFromFloat(0.01)))
	}
}

func TestApplyOverridesReturnModel(t *testing.T) {
	config := twoScenarioConfig()

	err := ApplyOverrides(config, "", []string{"scalar_mean=0.07", "scalar_vol=0.15"})

	require.NoError(t, err)
	assert.InDelta(t, 0.07, config.ReturnModel.ScalarMean, 1e-12)
	assert.InDelta(t, 0.15, config.ReturnModel.ScalarVol, 1e-12)
}

func TestApplyOverridesTrimsWhitespace(t *testing.T) {
	config := twoScenarioConfig()

	err := ApplyOverrides(config, "base", []string{" tax_year = 2025 "})

	require.NoError(t, err)
	assert.Equal(t, 2025, config.Scenarios[0].Assumptions.TaxYear)
}

func TestApplyOverridesErrors(t *testing.T) {
	tests := []struct {
		name      string
		scenario  string
		pair      string
		wantField string
	}{
		{"unknown key", "", "spending_floor=100", "set"},
		{"missing equals", "", "inflation_rate", "set"},
		{"unparseable int", "", "horizon_months=abc", "set.horizon_months"},
		{"unparseable decimal", "", "inflation_rate=four", "set.inflation_rate"},
		{"unknown scenario", "missing", "seed=1", "set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := twoScenarioConfig()

			err := ApplyOverrides(config, tt.scenario, []string{tt.pair})

			require.Error(t, err)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}
