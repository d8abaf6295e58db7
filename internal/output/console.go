package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/horizonfp/horizon/internal/domain"
)

// ConsoleFormatter renders a detailed plain-text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) FormatProjection(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer

	banner(&buf, fmt.Sprintf("RETIREMENT PROJECTION - SCENARIO %q", result.Scenario))

	fmt.Fprintln(&buf, "RUN SUMMARY")
	fmt.Fprintln(&buf, "===========")
	fmt.Fprintf(&buf, "Run ID:           %s\n", result.RunID)
	fmt.Fprintf(&buf, "Months Projected: %d\n", len(result.Rows))
	fmt.Fprintf(&buf, "Terminal Wealth:  %s\n", FormatCurrency(result.TerminalValue()))
	fmt.Fprintf(&buf, "Total Taxes Paid: %s\n", FormatCurrency(result.TotalTaxesPaid()))
	if result.Depleted {
		fmt.Fprintf(&buf, "Portfolio DEPLETED after %s\n", FormatMonths(result.MonthsSurvived))
	} else {
		fmt.Fprintf(&buf, "Portfolio survives the full horizon\n")
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "  - %s\n", a)
	}
	fmt.Fprintln(&buf)

	if len(result.Plans) > 0 {
		fmt.Fprintln(&buf, "DECEMBER PASS, YEAR BY YEAR")
		fmt.Fprintln(&buf, strings.Repeat("-", 104))
		fmt.Fprintf(&buf, "%-6s %14s %14s %12s %12s %12s %12s %14s\n",
			"Year", "Withdrawals", "RMDs", "Conversion", "Fed Tax", "State Tax", "Total Tax", "Shortfall")
		fmt.Fprintln(&buf, strings.Repeat("-", 104))
		for _, yp := range result.Plans {
			plan := yp.Plan
			fmt.Fprintf(&buf, "%-6d %14s %14s %12s %12s %12s %12s %14s\n",
				yp.Year,
				FormatCurrency(plan.TotalWithdrawals()),
				FormatCurrency(plan.TotalRMDs()),
				FormatCurrency(plan.RothConversion.Amount),
				FormatCurrency(plan.Tax.FederalTax),
				FormatCurrency(plan.Tax.StateTax),
				FormatCurrency(plan.Tax.TotalTax),
				FormatCurrency(plan.Shortfall))
		}
		fmt.Fprintln(&buf)

		writePlanNotes(&buf, result.Plans)
	}

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatSimulation(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	banner(&buf, fmt.Sprintf("MONTE CARLO SIMULATION - SCENARIO %q", result.Scenario))

	fmt.Fprintf(&buf, "Paths:   %d    Horizon: %s    Seed: %d\n",
		result.N, FormatMonths(result.HorizonMonths), result.Seed)
	fmt.Fprintf(&buf, "Elapsed: %s\n", result.Duration)
	if result.Synthetic {
		fmt.Fprintln(&buf, "WARNING: returns synthesized from scalar mean/volatility (no covariance matrix)")
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "SUCCESS RATE: %s\n", FormatPercent(result.SuccessRate))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TERMINAL WEALTH DISTRIBUTION")
	fmt.Fprintln(&buf, "============================")
	fmt.Fprintf(&buf, "  5th percentile:  %s\n", FormatCurrency(result.Percentile5))
	fmt.Fprintf(&buf, "  Median:          %s\n", FormatCurrency(result.Median))
	fmt.Fprintf(&buf, "  95th percentile: %s\n", FormatCurrency(result.Percentile95))
	fmt.Fprintf(&buf, "  Average:         %s\n", FormatCurrency(result.AverageEnding))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "OUTCOME PROBABILITIES")
	fmt.Fprintln(&buf, "=====================")
	fmt.Fprintf(&buf, "  Portfolio depleted:    %s\n", FormatPercent(result.PDepleted))
	fmt.Fprintf(&buf, "  Starting value kept:   %s\n", FormatPercent(result.PPreserved))
	fmt.Fprintf(&buf, "  Starting value doubled: %s\n", FormatPercent(result.PDoubled))
	if result.FailedPaths > 0 {
		fmt.Fprintf(&buf, "  Paths failed numerically: %d (scored as depleted)\n", result.FailedPaths)
	}

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatComparison(result *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	banner(&buf, "SCENARIO COMPARISON")

	fmt.Fprintf(&buf, "%-20s %16s %14s %16s %12s\n",
		"Scenario", "Terminal Wealth", "Total Taxes", "Year 1 Net Flow", "Survives")
	fmt.Fprintln(&buf, strings.Repeat("-", 84))
	for _, s := range result.Scenarios {
		survives := "yes"
		if s.Depleted {
			survives = FormatMonths(s.MonthsSurvived)
		}
		fmt.Fprintf(&buf, "%-20s %16s %14s %16s %12s\n",
			s.Name,
			FormatCurrency(s.TerminalWealth),
			FormatCurrency(s.TotalTaxes),
			FormatCurrency(s.FirstYearNetFlow),
			survives)
	}
	fmt.Fprintln(&buf)
	if best := result.Best(); best != "" {
		fmt.Fprintf(&buf, "Highest terminal wealth: %s\n", best)
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "RECOMMENDATIONS")
		fmt.Fprintln(&buf, "===============")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&buf, "  - %s\n", rec)
		}
	}

	return buf.Bytes(), nil
}

func banner(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, strings.Repeat("=", 84))
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", 84))
	fmt.Fprintln(buf)
}

func writePlanNotes(buf *bytes.Buffer, plans []domain.YearPlan) {
	wrote := false
	for _, yp := range plans {
		if len(yp.Plan.Notes) == 0 {
			continue
		}
		if !wrote {
			fmt.Fprintln(buf, "PLANNING NOTES")
			fmt.Fprintln(buf, "==============")
			wrote = true
		}
		for _, note := range yp.Plan.Notes {
			fmt.Fprintf(buf, "  %d: %s\n", yp.Year, note)
		}
	}
	if wrote {
		fmt.Fprintln(buf)
	}
}
