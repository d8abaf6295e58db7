package calculation

import (
	"context"

	"github.com/horizonfp/horizon/internal/domain"
)

// Logger lets callers capture engine diagnostics.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// Engine is the calculation entry point: it validates a configuration,
// selects the bracket-table snapshot for the scenario's tax year, and runs
// deterministic projections and Monte Carlo simulations.
type Engine struct {
	Logger Logger
	Debug  bool
}

// NewEngine creates an engine with the no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunProjection executes the deterministic baseline path for one scenario
// and returns the full monthly row stream. An empty scenario name selects
// the first scenario.
func (e *Engine) RunProjection(ctx context.Context, config *domain.Configuration, scenarioName string) (*domain.ProjectionResult, error) {
	if err := ValidateConfiguration(config); err != nil {
		return nil, err
	}
	scenario, tables, err := e.scenarioTables(config, scenarioName)
	if err != nil {
		return nil, err
	}

	e.Logger.Infof("projection start: scenario=%s", scenario.Name)
	driver := NewProjectionDriver(config, scenario, tables)
	returns := NewDeterministicReturns(config.ReturnModel, scenario.Assumptions.Allocation)
	result, err := driver.Project(ctx, returns)
	if err != nil {
		e.Logger.Errorf("projection failed: %v", err)
		return nil, err
	}
	e.Logger.Infof("projection complete: months=%d terminal=%s",
		len(result.Rows), result.TerminalValue().StringFixed(2))
	return result, nil
}

// RunSimulation executes the Monte Carlo orchestrator for one scenario.
// The progress callback is optional.
func (e *Engine) RunSimulation(ctx context.Context, config *domain.Configuration, scenarioName string, progress ProgressFunc) (*domain.SimulationResult, error) {
	if err := ValidateConfiguration(config); err != nil {
		return nil, err
	}
	scenario, tables, err := e.scenarioTables(config, scenarioName)
	if err != nil {
		return nil, err
	}

	orchestrator := NewMonteCarloOrchestrator(config, scenario, tables)
	orchestrator.Logger = e.Logger
	orchestrator.Progress = progress
	return orchestrator.Simulate(ctx)
}

// scenarioTables resolves the named scenario and its tax-year snapshot.
func (e *Engine) scenarioTables(config *domain.Configuration, name string) (domain.Scenario, *TaxYearTables, error) {
	scenario, ok := config.ScenarioByName(name)
	if !ok {
		return domain.Scenario{}, nil, domain.NewValidationError("scenario", "unknown scenario %q", name)
	}
	year := scenario.Assumptions.TaxYear
	if year == 0 {
		year = domain.DefaultTaxYear
	}
	tables, err := LoadTaxYear(year)
	if err != nil {
		return domain.Scenario{}, nil, err
	}
	return scenario, tables, nil
}
