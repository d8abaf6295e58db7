package calculation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

func TestLoadTaxYear(t *testing.T) {
	tables, err := LoadTaxYear(2024)
	if err != nil {
		t.Fatalf("LoadTaxYear(2024) returned error: %v", err)
	}
	if tables.Year != 2024 {
		t.Errorf("expected year 2024, got %d", tables.Year)
	}

	if _, err := LoadTaxYear(1999); err == nil {
		t.Error("expected error for unregistered tax year 1999")
	}
}

func TestFederalBracketShape(t *testing.T) {
	tables, _ := LoadTaxYear(2024)

	for _, fs := range []domain.FilingStatus{
		domain.FilingSingle,
		domain.FilingMarriedJoint,
		domain.FilingMarriedSeparate,
		domain.FilingHeadOfHousehold,
	} {
		brackets := tables.FederalBrackets(fs)
		if len(brackets) != 7 {
			t.Errorf("%s: expected 7 federal brackets, got %d", fs, len(brackets))
		}
		ltcg := tables.LTCGBrackets(fs)
		if len(ltcg) != 3 {
			t.Errorf("%s: expected 3 LTCG brackets, got %d", fs, len(ltcg))
		}
		for i := 1; i < len(brackets); i++ {
			if !brackets[i].Min.Equal(brackets[i-1].Max) {
				t.Errorf("%s: bracket %d lower bound %s does not meet previous ceiling %s",
					fs, i, brackets[i].Min, brackets[i-1].Max)
			}
		}
	}
}

func TestMarginalRate(t *testing.T) {
	tables, _ := LoadTaxYear(2024)

	tests := []struct {
		name    string
		status  domain.FilingStatus
		taxable decimal.Decimal
		want    decimal.Decimal
	}{
		{"zero income bottom bracket", domain.FilingMarriedJoint, decimal.Zero, decimal.NewFromFloat(0.10)},
		{"inside 12 percent", domain.FilingMarriedJoint, decimal.NewFromInt(50000), decimal.NewFromFloat(0.12)},
		{"boundary enters 22 percent", domain.FilingMarriedJoint, decimal.NewFromInt(94300), decimal.NewFromFloat(0.22)},
		{"top bracket", domain.FilingMarriedJoint, decimal.NewFromInt(900000), decimal.NewFromFloat(0.37)},
		{"single 24 percent", domain.FilingSingle, decimal.NewFromInt(150000), decimal.NewFromFloat(0.24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tables.MarginalRate(tt.taxable, tt.status)
			if !got.Equal(tt.want) {
				t.Errorf("MarginalRate(%s, %s) = %s, want %s", tt.taxable, tt.status, got, tt.want)
			}
		})
	}
}

func TestNextBracketCeiling(t *testing.T) {
	tables, _ := LoadTaxYear(2024)

	ceiling, ok := tables.NextBracketCeiling(decimal.NewFromInt(50000), domain.FilingMarriedJoint)
	if !ok {
		t.Fatal("expected a ceiling inside the 12 percent bracket")
	}
	if !ceiling.Equal(decimal.NewFromInt(94300)) {
		t.Errorf("expected ceiling 94300, got %s", ceiling)
	}

	if _, ok := tables.NextBracketCeiling(decimal.NewFromInt(5000000), domain.FilingMarriedJoint); ok {
		t.Error("expected no ceiling in the open top bracket")
	}
}

func TestDeductionFor(t *testing.T) {
	tables, _ := LoadTaxYear(2024)

	tests := []struct {
		name      string
		household domain.Household
		want      decimal.Decimal
	}{
		{"joint under 65", domain.Household{FilingStatus: domain.FilingMarriedJoint, Age1: 60, Age2: 58}, decimal.NewFromInt(29200)},
		{"joint one senior", domain.Household{FilingStatus: domain.FilingMarriedJoint, Age1: 67, Age2: 63}, decimal.NewFromInt(30750)},
		{"joint both senior", domain.Household{FilingStatus: domain.FilingMarriedJoint, Age1: 70, Age2: 68}, decimal.NewFromInt(32300)},
		{"single senior", domain.Household{FilingStatus: domain.FilingSingle, Age1: 66}, decimal.NewFromInt(16550)},
		{"head of household", domain.Household{FilingStatus: domain.FilingHeadOfHousehold, Age1: 50}, decimal.NewFromInt(21900)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tables.DeductionFor(tt.household)
			if !got.Equal(tt.want) {
				t.Errorf("DeductionFor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStateRuleFor(t *testing.T) {
	tables, _ := LoadTaxYear(2024)

	tests := []struct {
		state string
		kind  StateRuleKind
	}{
		{"TX", StateRuleNone},
		{"FL", StateRuleNone},
		{"AZ", StateRuleFlat},
		{"PA", StateRuleFlat},
		{"CA", StateRuleProgressive},
		{"NY", StateRuleProgressive},
	}

	for _, tt := range tests {
		rule, err := tables.StateRuleFor(tt.state)
		if err != nil {
			t.Errorf("StateRuleFor(%s) returned error: %v", tt.state, err)
			continue
		}
		if rule.Kind != tt.kind {
			t.Errorf("StateRuleFor(%s) kind = %s, want %s", tt.state, rule.Kind, tt.kind)
		}
	}

	if _, err := tables.StateRuleFor("ZZ"); err == nil {
		t.Error("expected error for unregistered state ZZ")
	}
}

func TestRMDFactorClamp(t *testing.T) {
	tables, _ := LoadTaxYear(2024)

	factor, ok := tables.RMDFactor(73)
	if !ok || !factor.Equal(decimal.NewFromFloat(26.5)) {
		t.Errorf("RMDFactor(73) = %s, want 26.5", factor)
	}

	factor, ok = tables.RMDFactor(100)
	if !ok || !factor.Equal(decimal.NewFromFloat(6.4)) {
		t.Errorf("RMDFactor(100) = %s, want 6.4", factor)
	}

	// Ages past the table clamp to the age-100 factor.
	clamped, ok := tables.RMDFactor(107)
	if !ok || !clamped.Equal(decimal.NewFromFloat(6.4)) {
		t.Errorf("RMDFactor(107) = %s, want 6.4", clamped)
	}

	if _, ok := tables.RMDFactor(60); ok {
		t.Error("expected no factor below the RMD start age")
	}
}
