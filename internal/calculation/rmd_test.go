package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequiredDistribution(t *testing.T) {
	tables, _ := LoadTaxYear(2024)
	calc := NewRMDCalculator(tables)

	tests := []struct {
		name    string
		age     int
		balance decimal.Decimal
		want    decimal.Decimal
	}{
		{"before start age", 72, decimal.NewFromInt(1000000), decimal.Zero},
		{"first RMD year", 73, decimal.NewFromInt(1000000), decimal.NewFromFloat(37735.85)},
		{"age 75", 75, decimal.NewFromInt(800000), decimal.NewFromFloat(32520.33)},
		{"age 80", 80, decimal.NewFromInt(500000), decimal.NewFromFloat(24752.48)},
		{"age 100", 100, decimal.NewFromInt(100000), decimal.NewFromFloat(15625.00)},
		{"age beyond table clamps", 105, decimal.NewFromInt(100000), decimal.NewFromFloat(15625.00)},
		{"zero balance", 85, decimal.Zero, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.RequiredDistribution(tt.age, tt.balance)
			if !got.Equal(tt.want) {
				t.Errorf("RequiredDistribution(%d, %s) = %s, want %s", tt.age, tt.balance, got, tt.want)
			}
		})
	}
}

func TestRequiredDistributionGrowsWithAge(t *testing.T) {
	tables, _ := LoadTaxYear(2024)
	calc := NewRMDCalculator(tables)

	balance := decimal.NewFromInt(1000000)
	previous := decimal.Zero
	for age := 73; age <= 100; age++ {
		rmd := calc.RequiredDistribution(age, balance)
		if rmd.LessThanOrEqual(previous) {
			t.Fatalf("RMD at age %d (%s) should exceed age %d (%s)", age, rmd, age-1, previous)
		}
		previous = rmd
	}
}
