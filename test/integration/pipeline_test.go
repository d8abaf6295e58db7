package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfp/horizon/internal/calculation"
	"github.com/horizonfp/horizon/internal/compare"
	"github.com/horizonfp/horizon/internal/domain"
	"github.com/horizonfp/horizon/internal/output"
)

// TestConfigPipelineThroughWriters runs the fixture end to end: parse,
// validate, project, then render the result in every registered format.
func TestConfigPipelineThroughWriters(t *testing.T) {
	cfg := loadFixture(t)
	engine := calculation.NewEngine()

	result, err := engine.RunProjection(context.Background(), cfg, "base")
	require.NoError(t, err)

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.WriteProjection(&buf, result, "console"))
		text := buf.String()
		assert.Contains(t, text, `SCENARIO "base"`)
		assert.Contains(t, text, "Terminal Wealth")
		assert.Contains(t, text, "survives the full horizon")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.WriteProjection(&buf, result, "csv"))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 361, "header plus one record per month")
		assert.True(t, strings.HasPrefix(lines[0], "MonthIndex,"), "header: %s", lines[0])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.WriteProjection(&buf, result, "json"))

		var decoded struct {
			Scenario string            `json:"scenario"`
			Rows     []json.RawMessage `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "base", decoded.Scenario)
		assert.Len(t, decoded.Rows, 360)
	})

	t.Run("pdf", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.WriteProjection(&buf, result, "pdf"))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "PDF magic bytes")
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		err := output.WriteProjection(&buf, result, "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}

// TestScenarioComparisonPipeline compares the fixture's two scenarios. The
// Roth permission is inert for this household, so the summaries come out
// identical and no recommendation fires.
func TestScenarioComparisonPipeline(t *testing.T) {
	cfg := loadFixture(t)
	engine := compare.NewEngine(calculation.NewEngine())

	comparison, err := engine.CompareScenarios(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, comparison.Scenarios, 2, "empty name list compares every scenario")

	base, roth := comparison.Scenarios[0], comparison.Scenarios[1]
	assert.Equal(t, "base", base.Name)
	assert.Equal(t, "roth_spend", roth.Name)
	assert.True(t, base.TerminalWealth.Equal(roth.TerminalWealth),
		"the taxable account never runs dry, so the Roth door never opens: %s vs %s",
		base.TerminalWealth, roth.TerminalWealth)
	assert.Equal(t, "base", comparison.Best(), "ties go to the first scenario")

	var buf bytes.Buffer
	require.NoError(t, output.WriteComparison(&buf, comparison, "console"))
	assert.Contains(t, buf.String(), "roth_spend")

	named, err := engine.CompareScenarios(context.Background(), cfg, []string{"base"})
	require.NoError(t, err)
	assert.Len(t, named.Scenarios, 1)
	assert.Empty(t, named.Recommendations, "a single scenario has nothing to recommend against")
}

// TestSameSeedReproducibility reruns the fixture and expects identical rows
// and identical Monte Carlo aggregates.
func TestSameSeedReproducibility(t *testing.T) {
	cfg := loadFixture(t)
	engine := calculation.NewEngine()
	ctx := context.Background()

	first, err := engine.RunProjection(ctx, cfg, "base")
	require.NoError(t, err)
	second, err := engine.RunProjection(ctx, cfg, "base")
	require.NoError(t, err)
	assert.Equal(t, first.Rows, second.Rows, "deterministic rows repeat exactly")
	assert.NotEqual(t, first.RunID, second.RunID, "each run gets its own identity")

	simA, err := engine.RunSimulation(ctx, cfg, "base", nil)
	require.NoError(t, err)
	simB, err := engine.RunSimulation(ctx, cfg, "base", nil)
	require.NoError(t, err)

	assert.Equal(t, 500, simA.N)
	assert.True(t, simA.SuccessRate.Equal(simB.SuccessRate), "%s vs %s", simA.SuccessRate, simB.SuccessRate)
	assert.True(t, simA.Median.Equal(simB.Median))
	assert.True(t, simA.Percentile5.Equal(simB.Percentile5))
	assert.True(t, simA.Percentile95.Equal(simB.Percentile95))
	assert.True(t, simA.AverageEnding.Equal(simB.AverageEnding))
}

// growthOnlyConfig holds $1M with no cash flows so a year of projection is
// pure monthly compounding at the model's 7% mean.
func growthOnlyConfig() *domain.Configuration {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Configuration{
		Household: domain.HouseholdProfile{
			State:        "FL",
			FilingStatus: domain.FilingSingle,
			Members: []domain.Member{
				{Name: "Iris", BirthDate: time.Date(1970, 1, 20, 0, 0, 0, 0, time.UTC)},
			},
		},
		Accounts: domain.AccountBuckets{Taxable: decimal.NewFromInt(1000000)},
		ReturnModel: domain.ReturnModel{
			AssetClasses:    []string{"portfolio"},
			ExpectedReturns: []float64{0.07},
			Covariance:      [][]float64{{0.0324}},
		},
		Scenarios: []domain.Scenario{
			{
				Name: "base",
				Assumptions: domain.Assumptions{
					ValuationDate: start,
					TaxYear:       2024,
					HorizonMonths: 12,
					Allocation:    []float64{1.0},
				},
			},
		},
	}
}

func TestYearOfGrowthMatchesExpectedReturn(t *testing.T) {
	cfg := growthOnlyConfig()
	engine := calculation.NewEngine()

	result, err := engine.RunProjection(context.Background(), cfg, "base")
	require.NoError(t, err)
	require.Len(t, result.Rows, 12)

	terminal := result.TerminalValue()
	assert.InDelta(t, 1072290.08, terminal.InexactFloat64(), 0.25,
		"twelve months at 7%%/12 with cent rounding")
	assert.True(t, terminal.GreaterThan(decimal.NewFromInt(1070000)),
		"monthly compounding beats the simple annual rate: %s", terminal)
	assert.True(t, result.TotalTaxesPaid().IsZero(), "nothing was sold, nothing is owed")
	assert.False(t, result.Depleted)
}

// preservingConfig is a no-withdrawal portfolio: $500k riding a 7%/18%
// asset for ten years.
func preservingConfig() *domain.Configuration {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Configuration{
		Household: domain.HouseholdProfile{
			State:        "FL",
			FilingStatus: domain.FilingSingle,
			Members: []domain.Member{
				{Name: "Omar", BirthDate: time.Date(1980, 7, 4, 0, 0, 0, 0, time.UTC)},
			},
		},
		Accounts: domain.AccountBuckets{Taxable: decimal.NewFromInt(500000)},
		ReturnModel: domain.ReturnModel{
			AssetClasses:    []string{"portfolio"},
			ExpectedReturns: []float64{0.07},
			Covariance:      [][]float64{{0.0324}},
		},
		Scenarios: []domain.Scenario{
			{
				Name: "hold",
				Assumptions: domain.Assumptions{
					ValuationDate: start,
					TaxYear:       2024,
					HorizonMonths: 120,
					Allocation:    []float64{1.0},
					Seed:          7,
					NumPaths:      1000,
				},
			},
		},
	}
}

// drainingConfig spends $31k a year from $300k against a weak scalar
// model, which should fail in most paths well inside thirty years.
func drainingConfig() *domain.Configuration {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Configuration{
		Household: domain.HouseholdProfile{
			State:        "FL",
			FilingStatus: domain.FilingSingle,
			Members: []domain.Member{
				{Name: "Nadia", BirthDate: time.Date(1958, 11, 30, 0, 0, 0, 0, time.UTC)},
			},
		},
		Accounts: domain.AccountBuckets{Taxable: decimal.NewFromInt(300000)},
		ExpenseStreams: []domain.Stream{
			{Name: "living", BaseAmount: decimal.NewFromInt(31000), Frequency: domain.FrequencyAnnual, StartDate: start},
		},
		ReturnModel: domain.ReturnModel{
			ScalarMean: 0.04,
			ScalarVol:  0.10,
		},
		Scenarios: []domain.Scenario{
			{
				Name: "drain",
				Assumptions: domain.Assumptions{
					ValuationDate: start,
					TaxYear:       2024,
					HorizonMonths: 360,
					Seed:          11,
					NumPaths:      500,
				},
			},
		},
	}
}

func TestSimulationDistributionProperties(t *testing.T) {
	engine := calculation.NewEngine()
	ctx := context.Background()

	t.Run("untouched portfolio usually grows", func(t *testing.T) {
		result, err := engine.RunSimulation(ctx, preservingConfig(), "hold", nil)
		require.NoError(t, err)

		assert.False(t, result.Synthetic, "a full covariance matrix was supplied")
		assert.True(t, result.PPreserved.GreaterThan(decimal.NewFromFloat(0.5)),
			"preserved principal in %s of paths", result.PPreserved)
		assert.True(t, result.AverageEnding.GreaterThan(decimal.NewFromInt(500000)),
			"average ending: %s", result.AverageEnding)
		assert.True(t, result.SuccessRate.Equal(decimal.NewFromInt(1)),
			"no withdrawals means no depletion: %s", result.SuccessRate)
	})

	t.Run("oversized draw usually fails", func(t *testing.T) {
		result, err := engine.RunSimulation(ctx, drainingConfig(), "drain", nil)
		require.NoError(t, err)

		assert.True(t, result.Synthetic, "scalar mean and volatility fall back to the synthetic model")
		assert.True(t, result.PDepleted.GreaterThan(decimal.NewFromFloat(0.8)),
			"depleted in %s of paths", result.PDepleted)
		assert.True(t, result.SuccessRate.LessThan(decimal.NewFromFloat(0.2)),
			"success rate: %s", result.SuccessRate)
	})
}
