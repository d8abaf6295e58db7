package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// DefaultTargetSuccessRate is used when a request leaves the target unset.
var DefaultTargetSuccessRate = decimal.NewFromFloat(0.90)

// SustainRequest asks for the highest annual spending the portfolio can
// carry at a given Monte Carlo success rate.
type SustainRequest struct {
	Config       *domain.Configuration
	ScenarioName string

	// TargetSuccessRate is a unit fraction; zero means the default 0.90.
	TargetSuccessRate decimal.Decimal

	MaxIterations int
	Tolerance     decimal.Decimal
}

// Validate checks that the request is internally consistent.
func (r SustainRequest) Validate() error {
	if r.Config == nil {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "configuration is required",
		}
	}
	if r.TargetSuccessRate.IsNegative() || r.TargetSuccessRate.GreaterThan(decimalOne) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target_success_rate must be within (0, 1]",
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	return nil
}

// SustainResult is the outcome of a sustainable-spending search.
type SustainResult struct {
	ScenarioName      string          `json:"scenario_name"`
	TargetSuccessRate decimal.Decimal `json:"target_success_rate"`

	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`

	BaselineAnnual     decimal.Decimal `json:"baseline_annual"`
	SustainableAnnual  decimal.Decimal `json:"sustainable_annual"`
	SustainableMonthly decimal.Decimal `json:"sustainable_monthly"`
	SpendingRatio      decimal.Decimal `json:"spending_ratio"`

	AchievedSuccessRate decimal.Decimal          `json:"achieved_success_rate"`
	Simulation          *domain.SimulationResult `json:"simulation,omitempty"`
}

// SolverOptions configures the search.
type SolverOptions struct {
	Tolerance     decimal.Decimal // dollars of annual spending
	MaxIterations int
}

// DefaultSolverOptions returns the default search configuration: converge
// the spending bracket to within $500 in at most 40 simulations.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(500),
		MaxIterations: 40,
	}
}

// BreakEvenError represents errors from the break-even solver.
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
