package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table.
type TableFormatter struct{}

// Format generates a formatted table for a sustainable-spending result.
func (tf *TableFormatter) Format(result *SustainResult) string {
	var sb strings.Builder

	sb.WriteString("SUSTAINABLE SPENDING RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Scenario:            %s\n", result.ScenarioName))
	sb.WriteString(fmt.Sprintf("Target Success Rate: %s\n", tf.formatPercent(result.TargetSuccessRate)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Simulations Run:     %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SUSTAINABLE SPENDING\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Annual Spending:     $%s\n", tf.formatCurrency(result.SustainableAnnual)))
	sb.WriteString(fmt.Sprintf("Monthly Spending:    $%s\n", tf.formatCurrency(result.SustainableMonthly)))
	sb.WriteString(fmt.Sprintf("Configured Annual:   $%s\n", tf.formatCurrency(result.BaselineAnnual)))
	sb.WriteString(fmt.Sprintf("Spending Ratio:      %s of configured\n", tf.formatPercent(result.SpendingRatio)))
	sb.WriteString(fmt.Sprintf("Achieved Success:    %s\n", tf.formatPercent(result.AchievedSuccessRate)))
	sb.WriteString("\n")

	if sim := result.Simulation; sim != nil {
		sb.WriteString("SIMULATION AT SUSTAINABLE LEVEL\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Paths:               %d\n", sim.N))
		sb.WriteString(fmt.Sprintf("Horizon:             %d months\n", sim.HorizonMonths))
		sb.WriteString(fmt.Sprintf("Median Terminal:     $%s\n", tf.formatCurrency(sim.Median)))
		sb.WriteString(fmt.Sprintf("5th Percentile:      $%s\n", tf.formatCurrency(sim.Percentile5)))
		sb.WriteString(fmt.Sprintf("95th Percentile:     $%s\n", tf.formatCurrency(sim.Percentile95)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats solver results as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output.
func (jf *JSONFormatter) Format(result *SustainResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "converged"
	}
	return "did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatPercent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
