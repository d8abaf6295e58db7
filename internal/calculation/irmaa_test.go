package calculation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

func TestCalculateIRMAATiers(t *testing.T) {
	tables, _ := LoadTaxYear(2024)
	engine := NewTaxEngine(tables)

	joint := domain.Household{State: "FL", FilingStatus: domain.FilingMarriedJoint, Age1: 70, Age2: 68}

	tests := []struct {
		name       string
		magi       decimal.Decimal
		wantTier   int
		wantAnnual decimal.Decimal
	}{
		{
			name:       "below first threshold",
			magi:       decimal.NewFromInt(150000),
			wantTier:   0,
			wantAnnual: decimal.Zero,
		},
		{
			name:     "exactly at first ceiling stays in tier zero",
			magi:     decimal.NewFromInt(206000),
			wantTier: 0,
			// strict comparison on the ceiling
			wantAnnual: decimal.Zero,
		},
		{
			name:       "one dollar over enters tier one",
			magi:       decimal.NewFromInt(206001),
			wantTier:   1,
			wantAnnual: decimal.NewFromFloat(69.90).Add(decimal.NewFromFloat(12.90)).Mul(decimal.NewFromInt(24)),
		},
		{
			name:       "middle tier",
			magi:       decimal.NewFromInt(300000),
			wantTier:   2,
			wantAnnual: decimal.NewFromFloat(174.70).Add(decimal.NewFromFloat(33.30)).Mul(decimal.NewFromInt(24)),
		},
		{
			name:       "top tier above 750k",
			magi:       decimal.NewFromInt(1700000),
			wantTier:   5,
			wantAnnual: decimal.NewFromFloat(419.30).Add(decimal.NewFromFloat(81.00)).Mul(decimal.NewFromInt(24)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.calculateIRMAA(tt.magi, joint)
			if result.Tier != tt.wantTier {
				t.Errorf("tier = %d, want %d", result.Tier, tt.wantTier)
			}
			if !result.TotalAnnual.Equal(tt.wantAnnual) {
				t.Errorf("total annual = %s, want %s", result.TotalAnnual, tt.wantAnnual)
			}
		})
	}
}

func TestIRMAARequiresMedicareAge(t *testing.T) {
	tables, _ := LoadTaxYear(2024)
	engine := NewTaxEngine(tables)

	young := domain.Household{State: "FL", FilingStatus: domain.FilingMarriedJoint, Age1: 60, Age2: 59}
	result := engine.calculateIRMAA(decimal.NewFromInt(500000), young)

	if !result.TotalAnnual.IsZero() {
		t.Errorf("no IRMAA before age 65, got %s", result.TotalAnnual)
	}
}

func TestIRMAASingleEligibleMember(t *testing.T) {
	tables, _ := LoadTaxYear(2024)
	engine := NewTaxEngine(tables)

	// Only the 67-year-old owes the surcharge; the annualized amount is
	// half the two-person figure.
	mixed := domain.Household{State: "FL", FilingStatus: domain.FilingMarriedJoint, Age1: 67, Age2: 60}
	result := engine.calculateIRMAA(decimal.NewFromInt(300000), mixed)

	want := decimal.NewFromFloat(174.70).Add(decimal.NewFromFloat(33.30)).Mul(decimal.NewFromInt(12))
	if !result.TotalAnnual.Equal(want) {
		t.Errorf("total annual = %s, want %s", result.TotalAnnual, want)
	}
}

func TestIRMAAMarriedSeparateSchedule(t *testing.T) {
	tables, _ := LoadTaxYear(2024)
	engine := NewTaxEngine(tables)

	separate := domain.Household{State: "FL", FilingStatus: domain.FilingMarriedSeparate, Age1: 66}

	low := engine.calculateIRMAA(decimal.NewFromInt(90000), separate)
	if low.Tier != 0 || !low.TotalAnnual.IsZero() {
		t.Errorf("expected tier 0 with no surcharge, got tier %d total %s", low.Tier, low.TotalAnnual)
	}

	mid := engine.calculateIRMAA(decimal.NewFromInt(200000), separate)
	wantMid := decimal.NewFromFloat(384.30).Add(decimal.NewFromFloat(74.20)).Mul(decimal.NewFromInt(12))
	if mid.Tier != 1 || !mid.TotalAnnual.Equal(wantMid) {
		t.Errorf("expected compressed tier 1 = %s, got tier %d total %s", wantMid, mid.Tier, mid.TotalAnnual)
	}
}
