package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/domain"
	"github.com/horizonfp/horizon/internal/sequencing"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwo    = decimal.NewFromInt(2)
	decimalThree  = decimal.NewFromInt(3)
	decimalTwelve = decimal.NewFromInt(12)
)

func onePlus(rate decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(rate)
}

// ErrNumericDegeneracy marks a non-finite value reaching a balance or
// return. The path that produced it is failed, not the whole run.
var ErrNumericDegeneracy = errors.New("non-finite value in balance or return")

// ReturnSource produces one monthly portfolio return per month index.
type ReturnSource interface {
	MonthlyReturn(monthIndex int) float64
	Synthetic() bool
}

// ProjectionDriver advances one household through the horizon month by
// month. One instance drives one execution at a time; the orchestrator
// creates a fresh driver per Monte Carlo path.
type ProjectionDriver struct {
	config    *domain.Configuration
	scenario  domain.Scenario
	engine    *TaxEngine
	sequencer *sequencing.Sequencer
	cashflow  *CashFlowAggregator
	state     domain.RunState
}

// NewProjectionDriver wires the per-run collaborators for one scenario.
func NewProjectionDriver(config *domain.Configuration, scenario domain.Scenario, tables *TaxYearTables) *ProjectionDriver {
	engine := NewTaxEngine(tables)
	return &ProjectionDriver{
		config:    config,
		scenario:  scenario,
		engine:    engine,
		sequencer: sequencing.NewSequencer(engine, NewRMDCalculator(tables)),
		cashflow:  NewCashFlowAggregator(scenario.Assumptions),
		state:     domain.RunIdle,
	}
}

// State reports the driver's run state.
func (d *ProjectionDriver) State() domain.RunState {
	return d.state
}

// Project runs the full horizon and retains every monthly row plus the
// December withdrawal plans.
func (d *ProjectionDriver) Project(ctx context.Context, returns ReturnSource) (*domain.ProjectionResult, error) {
	out, err := d.run(ctx, returns, true)
	if err != nil {
		return nil, err
	}
	return &domain.ProjectionResult{
		RunID:          uuid.New(),
		Scenario:       d.scenario.Name,
		State:          d.state,
		Rows:           out.rows,
		Plans:          out.plans,
		Depleted:       out.depleted,
		MonthsSurvived: out.monthsSurvived,
		Synthetic:      returns.Synthetic(),
	}, nil
}

// RunPath runs the horizon keeping only terminal state, for Monte Carlo
// workers that must not hold 360 rows per path.
func (d *ProjectionDriver) RunPath(ctx context.Context, returns ReturnSource) (domain.SimulationPath, error) {
	out, err := d.run(ctx, returns, false)
	if err != nil {
		return domain.SimulationPath{}, err
	}
	return domain.SimulationPath{
		TerminalValue:  out.terminal,
		Depleted:       out.depleted,
		MonthsSurvived: out.monthsSurvived,
	}, nil
}

type pathOutcome struct {
	rows           []domain.TimeSeriesRow
	plans          []domain.YearPlan
	terminal       decimal.Decimal
	depleted       bool
	monthsSurvived int
}

func (d *ProjectionDriver) run(ctx context.Context, returns ReturnSource, retainRows bool) (pathOutcome, error) {
	d.state = domain.RunRunning

	a := d.scenario.Assumptions
	horizon := a.HorizonMonths
	if horizon <= 0 {
		horizon = domain.DefaultHorizonMonths
	}

	balances := d.config.Accounts.Clone()
	opts := sequencing.FromPlanning(d.scenario.Planning, a.FutureMarginalRate)

	var out pathOutcome
	out.monthsSurvived = horizon
	if retainRows {
		out.rows = make([]domain.TimeSeriesRow, 0, horizon)
		out.plans = make([]domain.YearPlan, 0, horizon/12+1)
	}

	var yearFlows MonthFlows
	for m := 0; m < horizon; m++ {
		select {
		case <-ctx.Done():
			d.state = domain.RunCancelled
			return pathOutcome{}, ctx.Err()
		default:
		}

		date := a.MonthDate(m)
		household := d.config.Household.At(date)

		flows := d.cashflow.MonthlyCashFlow(d.config.IncomeStreams, d.config.ExpenseStreams, m)
		yearFlows.Accumulate(flows)

		row := domain.TimeSeriesRow{
			MonthIndex:    m,
			MonthDate:     date,
			TotalIncome:   flows.Income,
			TotalExpenses: flows.Expenses,
			NetCashFlow:   flows.Net(),
			AgePrimary:    household.Age1,
			AgeSecondary:  household.Age2,
		}

		// Surplus cash lands in the taxable bucket; deficits wait for the
		// December sequencer pass.
		if net := flows.Net(); net.GreaterThan(decimal.Zero) {
			balances.Deposit(domain.AccountTaxable, net)
			row.Contributions = net
		}

		if m%12 == 11 {
			needs := sequencing.Needs{
				TargetSpending:     yearFlows.Expenses,
				OrdinaryIncome:     yearFlows.Ordinary,
				CapitalGainsIncome: yearFlows.CapitalGains,
				SocialSecurity:     yearFlows.SocialSecurity,
				TaxFreeIncome:      yearFlows.TaxFree,
			}
			plan := d.sequencer.Optimize(balances, needs, household, opts)

			for kind, amount := range plan.Withdrawals {
				balances.Withdraw(kind, amount)
			}
			taxDue := plan.Tax.TotalTax
			if plan.RothConversion.Recommendation == "Convert" {
				moved := balances.Withdraw(domain.AccountTraditionalIRA, plan.RothConversion.Amount)
				balances.Deposit(domain.AccountRothIRA, moved)
				taxDue = taxDue.Add(plan.RothConversion.AdditionalTax)
			}
			balances.Withdraw(domain.AccountTaxable, taxDue)

			row.SetWithdrawals(plan.Withdrawals)
			row.FederalTax = plan.Tax.FederalTax
			row.StateTax = plan.Tax.StateTax
			row.IRMAASurcharge = plan.Tax.IRMAA.TotalAnnual
			row.NIITTax = plan.Tax.NIIT
			row.TotalTax = taxDue
			row.Notes = strings.Join(plan.Notes, "; ")
			if retainRows {
				out.plans = append(out.plans, domain.YearPlan{Year: date.Year(), Plan: plan})
			}
			yearFlows = MonthFlows{}
		}

		r := returns.MonthlyReturn(m)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			d.state = domain.RunFailed
			return pathOutcome{}, fmt.Errorf("month %d: %w", m, ErrNumericDegeneracy)
		}
		monthlyReturn := decimal.NewFromFloat(r)
		if !a.TaxAlpha.IsZero() {
			monthlyReturn = monthlyReturn.Add(a.TaxAlpha.Div(decimalTwelve))
		}
		factor := onePlus(monthlyReturn)

		growth := decimal.Zero
		for _, kind := range domain.AllAccountKinds {
			balance := balances.Balance(kind)
			if balance.LessThanOrEqual(decimal.Zero) {
				continue
			}
			grown := balance.Mul(factor).Round(2)
			growth = growth.Add(grown.Sub(balance))
			balances.SetBalance(kind, grown)
		}
		row.Growth = growth

		for _, kind := range domain.AllAccountKinds {
			if balances.Balance(kind).IsNegative() {
				balances.SetBalance(kind, decimal.Zero)
			}
		}
		if !out.depleted && balances.IsDepleted() {
			out.depleted = true
			out.monthsSurvived = m
		}

		row.SetBalances(balances)
		if retainRows {
			out.rows = append(out.rows, row)
		}
	}

	out.terminal = balances.Total()
	d.state = domain.RunSucceeded
	return out, nil
}
