package output

import (
	"bytes"
	"encoding/csv"

	"github.com/horizonfp/horizon/internal/domain"
)

// CSVFormatter emits spreadsheet-friendly output: one row per projected
// month, or one summary row per simulation or compared scenario.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) FormatProjection(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"MonthIndex", "Date", "AgePrimary",
		"TotalIncome", "TotalExpenses", "NetCashFlow", "Contributions", "Growth",
		"TotalWithdrawals", "FederalTax", "StateTax", "IRMAA", "NIIT", "TotalTax",
		"BalanceTaxable", "BalanceTraditionalIRA", "BalanceTraditional401k",
		"BalanceRothIRA", "BalanceHSA", "TotalBalance", "Notes",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range result.Rows {
		record := []string{
			intToString(row.MonthIndex),
			row.MonthDate.Format("2006-01"),
			intToString(row.AgePrimary),
			row.TotalIncome.StringFixed(2),
			row.TotalExpenses.StringFixed(2),
			row.NetCashFlow.StringFixed(2),
			row.Contributions.StringFixed(2),
			row.Growth.StringFixed(2),
			row.TotalWithdrawals.StringFixed(2),
			row.FederalTax.StringFixed(2),
			row.StateTax.StringFixed(2),
			row.IRMAASurcharge.StringFixed(2),
			row.NIITTax.StringFixed(2),
			row.TotalTax.StringFixed(2),
			row.BalanceTaxable.StringFixed(2),
			row.BalanceTraditionalIRA.StringFixed(2),
			row.BalanceTraditional401k.StringFixed(2),
			row.BalanceRothIRA.StringFixed(2),
			row.BalanceHSA.StringFixed(2),
			row.TotalBalance().StringFixed(2),
			row.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (c CSVFormatter) FormatSimulation(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Paths", "HorizonMonths", "Seed", "Synthetic",
		"SuccessRate", "Percentile5", "Median", "Percentile95", "AverageEnding",
		"PDepleted", "PDoubled", "PPreserved", "FailedPaths",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		result.Scenario,
		intToString(result.N),
		intToString(result.HorizonMonths),
		int64ToString(result.Seed),
		boolToString(result.Synthetic),
		result.SuccessRate.StringFixed(4),
		result.Percentile5.StringFixed(2),
		result.Median.StringFixed(2),
		result.Percentile95.StringFixed(2),
		result.AverageEnding.StringFixed(2),
		result.PDepleted.StringFixed(4),
		result.PDoubled.StringFixed(4),
		result.PPreserved.StringFixed(4),
		intToString(result.FailedPaths),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (c CSVFormatter) FormatComparison(result *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "TerminalWealth", "TotalTaxes", "FirstYearNetFlow",
		"Depleted", "MonthsSurvived",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range result.Scenarios {
		row := []string{
			s.Name,
			s.TerminalWealth.StringFixed(2),
			s.TotalTaxes.StringFixed(2),
			s.FirstYearNetFlow.StringFixed(2),
			boolToString(s.Depleted),
			intToString(s.MonthsSurvived),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func int64ToString(n int64) string {
	return intToString(int(n))
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
