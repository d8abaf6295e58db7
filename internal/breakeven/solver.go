package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/calculation"
	"github.com/horizonfp/horizon/internal/domain"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwo    = decimal.NewFromInt(2)
	decimalTwelve = decimal.NewFromInt(12)
)

// Solver searches for the highest sustainable spending level by bisecting
// over scaled copies of the configured expense streams, running the Monte
// Carlo orchestrator at each candidate.
type Solver struct {
	Calc    *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a solver with explicit options.
func NewSolver(calc *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{Calc: calc, Options: options}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(calc *calculation.Engine) *Solver {
	return NewSolver(calc, DefaultSolverOptions())
}

// Solve bisects annual spending over [0, 2x configured] until the bracket
// is narrower than the tolerance. Spending levels whose success rate meets
// the target move the lower bound; the result reports the highest level
// that passed.
func (s *Solver) Solve(ctx context.Context, req SustainRequest) (*SustainResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	target := req.TargetSuccessRate
	if target.IsZero() {
		target = DefaultTargetSuccessRate
	}

	scenario, ok := req.Config.ScenarioByName(req.ScenarioName)
	if !ok {
		return nil, &BreakEvenError{
			Operation: "solve_sustainable_spending",
			Message:   fmt.Sprintf("unknown scenario %q", req.ScenarioName),
		}
	}

	baseline := BaselineAnnualSpending(req.Config, scenario)
	if !baseline.IsPositive() {
		return nil, &BreakEvenError{
			Operation: "solve_sustainable_spending",
			Message:   "configuration has no expense streams to scale",
		}
	}

	result := &SustainResult{
		ScenarioName:      scenario.Name,
		TargetSuccessRate: target,
		BaselineAnnual:    baseline.Round(2),
	}

	low := decimal.Zero
	high := baseline.Mul(decimalTwo)

	// The cap may already sustain; probe it before bisecting.
	sim, err := s.probe(ctx, req.Config, scenario.Name, high, baseline)
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if sim.SuccessRate.GreaterThanOrEqual(target) {
		result.Success = true
		result.ConvergenceInfo = "twice the configured spending still sustains; search capped"
		return s.finish(result, high, sim), nil
	}

	var best *domain.SimulationResult
	bestSpend := decimal.Zero
	for result.Iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if high.Sub(low).LessThan(req.Tolerance) {
			break
		}

		mid := low.Add(high).Div(decimalTwo)
		sim, err := s.probe(ctx, req.Config, scenario.Name, mid, baseline)
		if err != nil {
			return nil, err
		}
		result.Iterations++

		if sim.SuccessRate.GreaterThanOrEqual(target) {
			low = mid
			best = sim
			bestSpend = mid
		} else {
			high = mid
		}
	}

	if best == nil {
		return nil, &BreakEvenError{
			Operation: "solve_sustainable_spending",
			Message: fmt.Sprintf("no spending level met the %s success target after %d simulations",
				target.StringFixed(2), result.Iterations),
		}
	}

	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("converged within $%s after %d simulations",
		req.Tolerance.StringFixed(0), result.Iterations)
	return s.finish(result, bestSpend, best), nil
}

// probe runs one simulation with expenses scaled to the candidate annual
// spending level.
func (s *Solver) probe(ctx context.Context, config *domain.Configuration, scenarioName string, annual, baseline decimal.Decimal) (*domain.SimulationResult, error) {
	scaled := ScaleSpending(config, annual.Div(baseline))
	sim, err := s.Calc.RunSimulation(ctx, scaled, scenarioName, nil)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_sustainable_spending",
			Message:   fmt.Sprintf("simulation at $%s annual spending failed", annual.StringFixed(0)),
			Cause:     err,
		}
	}
	return sim, nil
}

func (s *Solver) finish(result *SustainResult, annual decimal.Decimal, sim *domain.SimulationResult) *SustainResult {
	result.SustainableAnnual = annual.Round(2)
	result.SustainableMonthly = annual.Div(decimalTwelve).Round(2)
	result.SpendingRatio = annual.Div(result.BaselineAnnual).Round(4)
	result.AchievedSuccessRate = sim.SuccessRate
	result.Simulation = sim
	return result
}

// ScaleSpending clones the configuration with every expense stream's base
// amount multiplied by factor. The household, accounts, income streams, and
// scenarios are shared with the original.
func ScaleSpending(config *domain.Configuration, factor decimal.Decimal) *domain.Configuration {
	scaled := *config
	scaled.ExpenseStreams = make([]domain.Stream, len(config.ExpenseStreams))
	for i, stream := range config.ExpenseStreams {
		stream.BaseAmount = stream.BaseAmount.Mul(factor)
		scaled.ExpenseStreams[i] = stream
	}
	return &scaled
}

// BaselineAnnualSpending sums the first projection year's expenses under
// the scenario's assumptions, including frequency and indexing effects.
func BaselineAnnualSpending(config *domain.Configuration, scenario domain.Scenario) decimal.Decimal {
	aggregator := calculation.NewCashFlowAggregator(scenario.Assumptions)
	total := decimal.Zero
	for m := 0; m < 12; m++ {
		total = total.Add(aggregator.MonthlyCashFlow(nil, config.ExpenseStreams, m).Expenses)
	}
	return total
}
