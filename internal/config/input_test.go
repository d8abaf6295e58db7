package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfp/horizon/internal/domain"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")
	err := os.WriteFile(invalidFile, []byte("household: [unclosed"), 0644)
	require.NoError(t, err)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

const validPayload = `
household:
  state: "PA"
  filing_status: "married_joint"
  members:
    - name: "Alice"
      birth_date: "1960-03-15T00:00:00Z"
    - name: "Bob"
      birth_date: "1962-07-01T00:00:00Z"
accounts:
  taxable: 250000
  ira_traditional: 600000
  401k_traditional: 150000
  ira_roth: 80000
  hsa: 25000
income_streams:
  - name: "alice social security"
    base_amount: 2400
    frequency: "monthly"
    start_date: "2025-03-01T00:00:00Z"
    inflation_indexed: true
    tax_character: "social_security"
expense_streams:
  - name: "living expenses"
    base_amount: 5500
    frequency: "monthly"
    start_date: "2025-01-01T00:00:00Z"
    inflation_indexed: true
return_model:
  asset_classes: ["us_stocks", "bonds"]
  expected_returns: [0.08, 0.04]
  covariance:
    - [0.0225, 0.0045]
    - [0.0045, 0.0064]
scenarios:
  - name: "base"
    assumptions:
      valuation_date: "2025-01-01T00:00:00Z"
      inflation_rate: 0.025
      allocation: [0.6, 0.4]
      seed: 42
    planning:
      charitable_giving: 10000
`

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.yaml")
	err := os.WriteFile(validFile, []byte(validPayload), 0644)
	require.NoError(t, err)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(validFile)

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "PA", config.Household.State)
	assert.Equal(t, domain.FilingMarriedJoint, config.Household.FilingStatus)
	require.Len(t, config.Household.Members, 2)
	assert.Equal(t, "Alice", config.Household.Members[0].Name)
	assert.Equal(t, time.Date(1960, 3, 15, 0, 0, 0, 0, time.UTC), config.Household.Members[0].BirthDate)

	assert.True(t, config.Accounts.TraditionalIRA.Equal(decimal.NewFromInt(600000)))
	assert.True(t, config.Accounts.HSA.Equal(decimal.NewFromInt(25000)))

	require.Len(t, config.IncomeStreams, 1)
	assert.Equal(t, domain.TaxCharacterSocialSecurity, config.IncomeStreams[0].TaxCharacter)
	assert.True(t, config.IncomeStreams[0].InflationIndexed)

	assert.True(t, config.ReturnModel.HasMatrix())
	require.Len(t, config.Scenarios, 1)
	assert.Equal(t, []float64{0.6, 0.4}, config.Scenarios[0].Assumptions.Allocation)
	assert.True(t, config.Scenarios[0].Planning.CharitableGiving.Equal(decimal.NewFromInt(10000)))
}

func TestParseAppliesDefaults(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.Parse([]byte(validPayload))

	require.NoError(t, err)
	a := config.Scenarios[0].Assumptions
	assert.Equal(t, domain.DefaultTaxYear, a.TaxYear, "omitted tax year defaults")
	assert.Equal(t, domain.DefaultHorizonMonths, a.HorizonMonths, "omitted horizon defaults")
	assert.Equal(t, domain.DefaultNumPaths, a.NumPaths, "omitted path count defaults")
	assert.Equal(t, int64(42), a.Seed, "explicit values survive")
}

func TestValidateConfigurationRejections(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name      string
		mutate    func(*domain.Configuration)
		wantField string
	}{
		{
			"missing state",
			func(c *domain.Configuration) { c.Household.State = "" },
			"household.state",
		},
		{
			"bad filing status",
			func(c *domain.Configuration) { c.Household.FilingStatus = "married_filing_jointly" },
			"household.filing_status",
		},
		{
			"no members",
			func(c *domain.Configuration) { c.Household.Members = nil },
			"household.members",
		},
		{
			"member without birth date",
			func(c *domain.Configuration) { c.Household.Members[1].BirthDate = time.Time{} },
			"household.members",
		},
		{
			"negative balance",
			func(c *domain.Configuration) { c.Accounts.RothIRA = decimal.NewFromInt(-1) },
			"accounts.ira_roth",
		},
		{
			"no scenarios",
			func(c *domain.Configuration) { c.Scenarios = nil },
			"scenarios",
		},
		{
			"unnamed scenario",
			func(c *domain.Configuration) { c.Scenarios[0].Name = "" },
			"scenarios[0].name",
		},
		{
			"duplicate scenario names",
			func(c *domain.Configuration) { c.Scenarios = append(c.Scenarios, c.Scenarios[0]) },
			"scenarios",
		},
		{
			"missing valuation date",
			func(c *domain.Configuration) { c.Scenarios[0].Assumptions.ValuationDate = time.Time{} },
			"assumptions.valuation_date",
		},
		{
			"allocation weights do not sum to one",
			func(c *domain.Configuration) { c.Scenarios[0].Assumptions.Allocation = []float64{0.5, 0.4} },
			"assumptions.allocation",
		},
		{
			"allocation weight out of range",
			func(c *domain.Configuration) { c.Scenarios[0].Assumptions.Allocation = []float64{1.5, -0.5} },
			"assumptions.allocation",
		},
		{
			"negative charitable giving",
			func(c *domain.Configuration) {
				c.Scenarios[0].Planning.CharitableGiving = decimal.NewFromInt(-5)
			},
			"planning.charitable_giving",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := parser.Parse([]byte(validPayload))
			require.NoError(t, err)
			tt.mutate(config)

			err = parser.ValidateConfiguration(config)

			require.Error(t, err)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %T: %v", err, err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateStreamErrors(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.Parse([]byte(validPayload))
	require.NoError(t, err)
	config.IncomeStreams[0].Frequency = "weekly"

	err = parser.ValidateConfiguration(config)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "income stream validation failed")
	assert.Contains(t, err.Error(), "weekly")
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		assert.NoError(t, LoadEnvironment(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("loads variables", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		err := os.WriteFile(envFile, []byte("HORIZON_TEST_DSN=postgres://env@localhost/horizon\n"), 0644)
		require.NoError(t, err)
		defer os.Unsetenv("HORIZON_TEST_DSN")

		require.NoError(t, LoadEnvironment(envFile))
		assert.Equal(t, "postgres://env@localhost/horizon", os.Getenv("HORIZON_TEST_DSN"))
	})
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://horizon@localhost:5432/plans")
	assert.Equal(t, "postgres://horizon@localhost:5432/plans", DatabaseURL())
}
