package domain

import (
	"fmt"
	"strings"
	"time"
)

// FilingStatus identifies the federal filing status of a household.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// ParseFilingStatus normalizes a configuration string to a FilingStatus.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch FilingStatus(strings.ToLower(strings.TrimSpace(s))) {
	case FilingSingle:
		return FilingSingle, nil
	case FilingMarriedJoint:
		return FilingMarriedJoint, nil
	case FilingMarriedSeparate:
		return FilingMarriedSeparate, nil
	case FilingHeadOfHousehold:
		return FilingHeadOfHousehold, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// IsValid reports whether the filing status is one of the four recognized values.
func (fs FilingStatus) IsValid() bool {
	switch fs {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold:
		return true
	}
	return false
}

// Member is one person in the household.
type Member struct {
	Name      string    `yaml:"name" json:"name"`
	BirthDate time.Time `yaml:"birth_date" json:"birth_date"`
}

// AgeOn returns the member's age in whole years on the given date.
func (m Member) AgeOn(date time.Time) int {
	age := date.Year() - m.BirthDate.Year()
	if date.Month() < m.BirthDate.Month() ||
		(date.Month() == m.BirthDate.Month() && date.Day() < m.BirthDate.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// Household is the taxpayer profile the tax engine operates on.
// Age2 of zero means there is no second taxpayer.
type Household struct {
	State        string       `yaml:"state" json:"state"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filing_status"`
	Age1         int          `yaml:"age1" json:"age1"`
	Age2         int          `yaml:"age2" json:"age2"`
	Dependents   int          `yaml:"dependents" json:"dependents"`
}

// MedicareEligibleCount returns how many household taxpayers are 65 or older.
func (h Household) MedicareEligibleCount() int {
	n := 0
	if h.Age1 >= 65 {
		n++
	}
	if h.Age2 >= 65 {
		n++
	}
	return n
}
