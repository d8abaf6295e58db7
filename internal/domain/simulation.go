package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RunState is the projection driver state machine.
type RunState int

const (
	RunIdle RunState = iota
	RunRunning
	RunSucceeded
	RunFailed
	RunCancelled
)

// String returns the lower-case state name.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunRunning:
		return "running"
	case RunSucceeded:
		return "succeeded"
	case RunFailed:
		return "failed"
	case RunCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SimulationPath is one Monte Carlo trajectory. Values is retained only for
// detail paths; aggregate-only paths carry terminal state alone.
type SimulationPath struct {
	Values         []decimal.Decimal `json:"values,omitempty"`
	TerminalValue  decimal.Decimal   `json:"terminal_value"`
	Depleted       bool              `json:"depleted"`
	MonthsSurvived int               `json:"months_survived"`
}

// SimulationResult is the aggregate outcome of a Monte Carlo run.
// Probabilities and rates are unit fractions in [0, 1].
type SimulationResult struct {
	RunID         uuid.UUID       `json:"run_id"`
	Scenario      string          `json:"scenario"`
	N             int             `json:"n"`
	HorizonMonths int             `json:"horizon_months"`
	Seed          int64           `json:"seed"`
	Synthetic     bool            `json:"synthetic"`
	State         RunState        `json:"state"`
	SuccessRate   decimal.Decimal `json:"success_rate"`
	Percentile5   decimal.Decimal `json:"percentile_5"`
	Median        decimal.Decimal `json:"median"`
	Percentile95  decimal.Decimal `json:"percentile_95"`
	AverageEnding decimal.Decimal `json:"average_ending"`
	PDepleted     decimal.Decimal `json:"p_depleted"`
	PDoubled      decimal.Decimal `json:"p_doubled"`
	PPreserved    decimal.Decimal `json:"p_preserved"`
	FailedPaths   int             `json:"failed_paths"`
	Duration      time.Duration   `json:"duration"`
}

// ProjectionResult is the outcome of one deterministic driver run.
type ProjectionResult struct {
	RunID          uuid.UUID       `json:"run_id"`
	Scenario       string          `json:"scenario"`
	State          RunState        `json:"state"`
	Rows           []TimeSeriesRow `json:"rows"`
	Plans          []YearPlan      `json:"plans"`
	Depleted       bool            `json:"depleted"`
	MonthsSurvived int             `json:"months_survived"`
	Synthetic      bool            `json:"synthetic"`
}

// YearPlan pairs a projection year with the sequencer plan applied in its
// December pass.
type YearPlan struct {
	Year int            `json:"year"`
	Plan WithdrawalPlan `json:"plan"`
}

// TerminalValue returns the total balance on the final row, or zero when no
// rows were emitted.
func (p ProjectionResult) TerminalValue() decimal.Decimal {
	if len(p.Rows) == 0 {
		return decimal.Zero
	}
	return p.Rows[len(p.Rows)-1].TotalBalance()
}

// TotalTaxesPaid sums the December tax rows across the projection.
func (p ProjectionResult) TotalTaxesPaid() decimal.Decimal {
	total := decimal.Zero
	for _, row := range p.Rows {
		total = total.Add(row.TotalTax)
	}
	return total
}
