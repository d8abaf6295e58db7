package compare

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfp/horizon/internal/calculation"
	"github.com/horizonfp/horizon/internal/domain"
)

// twoScenarioConfig pits a flat baseline against a tax-alpha uplift over the
// same household: $200,000 taxable, $1,000/month of expenses, no income.
func twoScenarioConfig() *domain.Configuration {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := domain.Assumptions{
		ValuationDate: start,
		TaxYear:       2024,
		HorizonMonths: 24,
	}
	boosted := base
	boosted.TaxAlpha = decimal.NewFromFloat(0.01)

	return &domain.Configuration{
		Household: domain.HouseholdProfile{
			State:        "FL",
			FilingStatus: domain.FilingSingle,
			Members: []domain.Member{
				{Name: "Ray", BirthDate: time.Date(1958, 2, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
		Accounts: domain.AccountBuckets{Taxable: decimal.NewFromInt(200000)},
		ExpenseStreams: []domain.Stream{
			{Name: "living", BaseAmount: decimal.NewFromInt(1000), Frequency: domain.FrequencyMonthly, StartDate: start},
		},
		Scenarios: []domain.Scenario{
			{Name: "base", Assumptions: base},
			{Name: "boosted", Assumptions: boosted},
		},
	}
}

func TestCompareScenariosAll(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())
	config := twoScenarioConfig()

	comparison, err := engine.CompareScenarios(context.Background(), config, nil)
	require.NoError(t, err)
	require.Len(t, comparison.Scenarios, 2)

	base := comparison.Scenarios[0]
	boosted := comparison.Scenarios[1]
	assert.Equal(t, "base", base.Name)
	assert.Equal(t, "boosted", boosted.Name)

	assert.False(t, base.Depleted)
	assert.False(t, boosted.Depleted)
	assert.True(t, boosted.TerminalWealth.GreaterThan(base.TerminalWealth),
		"tax alpha compounds into a higher terminal balance")

	assert.True(t, base.FirstYearNetFlow.Equal(decimal.NewFromInt(-12000)),
		"no income, 12 months of expenses, no tax due: %s", base.FirstYearNetFlow)

	assert.Equal(t, "boosted", comparison.Best())
	require.NotEmpty(t, comparison.Recommendations)
	assert.Contains(t, comparison.Recommendations[0], "Best Wealth: boosted")
}

func TestCompareScenariosExplicitNames(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())
	config := twoScenarioConfig()

	comparison, err := engine.CompareScenarios(context.Background(), config, []string{"boosted"})
	require.NoError(t, err)
	require.Len(t, comparison.Scenarios, 1)
	assert.Equal(t, "boosted", comparison.Scenarios[0].Name)
	assert.Empty(t, comparison.Recommendations, "a single scenario has nothing to compare against")
}

func TestCompareScenariosUnknownName(t *testing.T) {
	engine := NewEngine(calculation.NewEngine())

	_, err := engine.CompareScenarios(context.Background(), twoScenarioConfig(), []string{"missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to project scenario missing")
}

func TestGenerateRecommendations(t *testing.T) {
	comparison := &domain.ScenarioComparison{
		Scenarios: []domain.ScenarioSummary{
			{
				Name:           "base",
				TerminalWealth: decimal.NewFromInt(100000),
				TotalTaxes:     decimal.NewFromInt(50000),
				Depleted:       true,
				MonthsSurvived: 200,
			},
			{
				Name:           "alt",
				TerminalWealth: decimal.NewFromInt(180000),
				TotalTaxes:     decimal.NewFromInt(30000),
			},
		},
	}

	recommendations := GenerateRecommendations(comparison)
	require.Len(t, recommendations, 3)
	assert.Contains(t, recommendations[0], "Best Wealth: alt ends $80000 ahead of base")
	assert.Contains(t, recommendations[1], "Lowest Taxes: alt saves $20000 in lifetime taxes")
	assert.Contains(t, recommendations[2], "Longest Runway: alt")
}

func TestGenerateRecommendationsBaseWins(t *testing.T) {
	comparison := &domain.ScenarioComparison{
		Scenarios: []domain.ScenarioSummary{
			{Name: "base", TerminalWealth: decimal.NewFromInt(500000), TotalTaxes: decimal.NewFromInt(10000)},
			{Name: "alt", TerminalWealth: decimal.NewFromInt(400000), TotalTaxes: decimal.NewFromInt(20000)},
		},
	}
	assert.Empty(t, GenerateRecommendations(comparison))
}

func TestOutlasts(t *testing.T) {
	survivor := domain.ScenarioSummary{Name: "s"}
	early := domain.ScenarioSummary{Name: "e", Depleted: true, MonthsSurvived: 100}
	late := domain.ScenarioSummary{Name: "l", Depleted: true, MonthsSurvived: 250}

	assert.True(t, outlasts(survivor, early))
	assert.False(t, outlasts(early, survivor))
	assert.True(t, outlasts(late, early))
	assert.False(t, outlasts(early, late))
	assert.False(t, outlasts(survivor, survivor))
}
