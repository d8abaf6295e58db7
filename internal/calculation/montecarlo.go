package calculation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
)

// progressInterval is how many completed paths separate progress events.
const progressInterval = 1000

// ProgressFunc receives (completed, total) while a simulation runs.
type ProgressFunc func(completed, total int)

// MonteCarloOrchestrator fans one scenario out over N independent return
// paths. Paths share the factored return model and the bracket tables;
// every path gets a fresh driver and its own seeded generator.
type MonteCarloOrchestrator struct {
	config   *domain.Configuration
	scenario domain.Scenario
	tables   *TaxYearTables

	Logger   Logger
	Progress ProgressFunc
	Timeout  time.Duration
}

// NewMonteCarloOrchestrator creates an orchestrator for one scenario.
func NewMonteCarloOrchestrator(config *domain.Configuration, scenario domain.Scenario, tables *TaxYearTables) *MonteCarloOrchestrator {
	return &MonteCarloOrchestrator{
		config:   config,
		scenario: scenario,
		tables:   tables,
		Logger:   NopLogger{},
	}
}

// Simulate runs the full Monte Carlo and aggregates terminal outcomes.
// A cancelled context aborts the whole run with no partial results. Paths
// that fail numerically are logged and scored as depleted; the run itself
// fails when more than one percent of paths do.
func (o *MonteCarloOrchestrator) Simulate(ctx context.Context) (*domain.SimulationResult, error) {
	start := time.Now()

	a := o.scenario.Assumptions
	n := a.NumPaths
	if n <= 0 {
		n = domain.DefaultNumPaths
	}
	horizon := a.HorizonMonths
	if horizon <= 0 {
		horizon = domain.DefaultHorizonMonths
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	model, err := NewStochasticModel(o.config.ReturnModel, a.Allocation)
	if err != nil {
		return nil, err
	}
	if model.Synthetic() {
		o.Logger.Warnf("no usable covariance matrix, synthesizing returns from scalar mean %.4f vol %.4f",
			o.config.ReturnModel.ScalarMean, o.config.ReturnModel.ScalarVol)
	}

	workers := runtime.NumCPU()
	if n < workers {
		workers = n
	}
	o.Logger.Infof("simulation start: scenario=%s n=%d horizon=%d workers=%d",
		o.scenario.Name, n, horizon, workers)

	paths := make([]domain.SimulationPath, n)
	var next, completed, failed atomic.Int64

	progressCh := make(chan int, 64)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		for c := range progressCh {
			if o.Progress != nil {
				o.Progress(c, n)
			}
		}
	}()

	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1)) - 1
				if idx >= n || ctx.Err() != nil {
					return
				}
				driver := NewProjectionDriver(o.config, o.scenario, o.tables)
				path, err := driver.RunPath(ctx, model.Source(pathSeed(a.Seed, idx)))
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						errCh <- err
						return
					}
					o.Logger.Warnf("path %d failed: %v", idx, err)
					failed.Add(1)
					path = domain.SimulationPath{Depleted: true}
				}
				paths[idx] = path
				if c := int(completed.Add(1)); o.Progress != nil && c%progressInterval == 0 {
					select {
					case progressCh <- c:
					default:
					}
				}
			}
		}()
	}
	wg.Wait()
	close(progressCh)
	<-reporterDone

	select {
	case err := <-errCh:
		o.Logger.Warnf("simulation cancelled after %s", time.Since(start))
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failedCount := int(failed.Load())
	if failedCount*100 > n {
		return nil, fmt.Errorf("%d of %d paths failed: %w", failedCount, n, ErrNumericDegeneracy)
	}

	result := o.aggregate(paths, failedCount)
	result.RunID = uuid.New()
	result.Scenario = o.scenario.Name
	result.N = n
	result.HorizonMonths = horizon
	result.Seed = a.Seed
	result.Synthetic = model.Synthetic()
	result.State = domain.RunSucceeded
	result.Duration = time.Since(start)

	o.Logger.Infof("simulation complete: success=%s median=%s duration=%s",
		result.SuccessRate.StringFixed(4), result.Median.StringFixed(2), result.Duration)
	return result, nil
}

// pathSeed mixes the run seed with the path index through a splitmix64
// step. XORing the index in directly would hand adjacent base seeds the
// same set of per-path seeds in a different order, and order-insensitive
// aggregation would then reproduce identical percentiles.
func pathSeed(base int64, idx int) int64 {
	z := uint64(base) + uint64(idx)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

func (o *MonteCarloOrchestrator) aggregate(paths []domain.SimulationPath, failedCount int) *domain.SimulationResult {
	n := len(paths)
	starting := o.config.Accounts.Total()
	doubled := starting.Mul(decimalTwo)

	values := make([]decimal.Decimal, n)
	sum := decimal.Zero
	var succeeded, depleted, grewDouble, preserved int
	for i, path := range paths {
		values[i] = path.TerminalValue
		sum = sum.Add(path.TerminalValue)
		if path.Depleted {
			depleted++
		} else {
			succeeded++
		}
		if path.TerminalValue.GreaterThan(doubled) {
			grewDouble++
		}
		if path.TerminalValue.GreaterThan(starting) {
			preserved++
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })

	total := decimal.NewFromInt(int64(n))
	fraction := func(count int) decimal.Decimal {
		return decimal.NewFromInt(int64(count)).Div(total)
	}
	return &domain.SimulationResult{
		SuccessRate:   fraction(succeeded),
		Percentile5:   percentile(values, 0.05),
		Median:        percentile(values, 0.50),
		Percentile95:  percentile(values, 0.95),
		AverageEnding: sum.Div(total).Round(2),
		PDepleted:     fraction(depleted),
		PDoubled:      fraction(grewDouble),
		PPreserved:    fraction(preserved),
		FailedPaths:   failedCount,
	}
}

// percentile selects by floor-indexed rank from an ascending slice.
func percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	rank := int(float64(len(sorted)) * p)
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
