package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the payment cadence of an income or expense stream.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyAnnual    Frequency = "annual"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyOneTime   Frequency = "one-time"
)

// IsValid reports whether the frequency is a recognized cadence.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyAnnual, FrequencyQuarterly, FrequencyOneTime:
		return true
	}
	return false
}

// TaxCharacter classifies how an income stream is taxed. Expense streams
// carry no tax character.
type TaxCharacter string

const (
	TaxCharacterOrdinary       TaxCharacter = "ordinary"
	TaxCharacterCapitalGains   TaxCharacter = "capital_gains"
	TaxCharacterTaxFree        TaxCharacter = "tax_free"
	TaxCharacterSocialSecurity TaxCharacter = "social_security"
)

// IsValid reports whether the tax character is recognized.
func (tc TaxCharacter) IsValid() bool {
	switch tc {
	case TaxCharacterOrdinary, TaxCharacterCapitalGains, TaxCharacterTaxFree, TaxCharacterSocialSecurity:
		return true
	}
	return false
}

// StreamCategory pins an expense stream's inflation treatment explicitly.
// Unlabeled streams fall back to name-based inference for healthcare
// costs.
type StreamCategory string

const (
	StreamCategoryHealthcare StreamCategory = "healthcare"
	StreamCategoryGeneral    StreamCategory = "general"
)

// IsValid reports whether the category is recognized. Empty is valid and
// means unlabeled.
func (sc StreamCategory) IsValid() bool {
	switch sc {
	case "", StreamCategoryHealthcare, StreamCategoryGeneral:
		return true
	}
	return false
}

// Stream is one recurring or one-time cash flow. BaseAmount is the amount
// per occurrence at StartDate; indexing grows it over time.
type Stream struct {
	Name             string          `yaml:"name" json:"name"`
	BaseAmount       decimal.Decimal `yaml:"base_amount" json:"base_amount"`
	Frequency        Frequency       `yaml:"frequency" json:"frequency"`
	StartDate        time.Time       `yaml:"start_date" json:"start_date"`
	EndDate          *time.Time      `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	GrowthRate       decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
	InflationIndexed bool            `yaml:"inflation_indexed" json:"inflation_indexed"`
	Category         StreamCategory  `yaml:"category,omitempty" json:"category,omitempty"`
	TaxCharacter     TaxCharacter    `yaml:"tax_character,omitempty" json:"tax_character,omitempty"`
}

// Validate checks the stream fields that cannot be defaulted.
func (s Stream) Validate(isIncome bool) error {
	if s.Name == "" {
		return fmt.Errorf("stream name is required")
	}
	if s.BaseAmount.IsNegative() {
		return fmt.Errorf("stream %q: base_amount cannot be negative", s.Name)
	}
	if !s.Frequency.IsValid() {
		return fmt.Errorf("stream %q: unknown frequency %q", s.Name, s.Frequency)
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("stream %q: start_date is required", s.Name)
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("stream %q: end_date precedes start_date", s.Name)
	}
	if !s.Category.IsValid() {
		return fmt.Errorf("stream %q: unknown category %q", s.Name, s.Category)
	}
	if isIncome && !s.TaxCharacter.IsValid() {
		return fmt.Errorf("stream %q: unknown tax character %q", s.Name, s.TaxCharacter)
	}
	return nil
}
