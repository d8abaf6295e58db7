package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/horizonfp/horizon/internal/domain"
)

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFFormatter renders printable A4 reports.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) FormatProjection(result *domain.ProjectionResult) ([]byte, error) {
	r := newPDFReport(fmt.Sprintf("Retirement Projection - Scenario %q", result.Scenario))
	r.addProjectionSummary(result)
	r.addDecemberTable(result)
	r.addBalanceTable(result)
	r.addDisclaimer()
	return r.output()
}

func (p PDFFormatter) FormatSimulation(result *domain.SimulationResult) ([]byte, error) {
	r := newPDFReport(fmt.Sprintf("Monte Carlo Simulation - Scenario %q", result.Scenario))
	r.addSimulationSummary(result)
	r.addDisclaimer()
	return r.output()
}

func (p PDFFormatter) FormatComparison(result *domain.ScenarioComparison) ([]byte, error) {
	r := newPDFReport("Scenario Comparison")
	r.addComparisonTable(result)
	r.addDisclaimer()
	return r.output()
}

type pdfReport struct {
	pdf *fpdf.Fpdf
}

func newPDFReport(title string) *pdfReport {
	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", "")}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, title, "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(8)
	return r
}

func (r *pdfReport) addProjectionSummary(result *domain.ProjectionResult) {
	r.sectionHeader("Run Summary")
	r.keyValue("Run ID:", result.RunID.String())
	r.keyValue("Months Projected:", intToString(len(result.Rows)))
	r.keyValue("Terminal Wealth:", FormatCurrency(result.TerminalValue()))
	r.keyValue("Total Taxes Paid:", FormatCurrency(result.TotalTaxesPaid()))
	if result.Depleted {
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.SetTextColor(180, 0, 0)
		r.pdf.CellFormat(contentWidth, 6,
			fmt.Sprintf("Portfolio depleted after %s", FormatMonths(result.MonthsSurvived)), "", 1, "L", false, 0, "")
	} else {
		r.keyValue("Outcome:", "portfolio survives the full horizon")
	}
	r.pdf.Ln(4)

	r.sectionHeader("Key Assumptions")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range DefaultAssumptions {
		r.pdf.CellFormat(contentWidth, 5, "- "+a, "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addDecemberTable(result *domain.ProjectionResult) {
	if len(result.Plans) == 0 {
		return
	}
	if r.pdf.GetY() > 200 {
		r.pdf.AddPage()
	}
	r.sectionHeader("December Pass, Year by Year")

	widths := []float64{16, 28, 26, 26, 26, 26, 32}
	headers := []string{"Year", "Withdrawals", "RMDs", "Conversion", "Fed Tax", "State Tax", "Shortfall"}
	r.tableHeader(headers, widths)
	for _, yp := range result.Plans {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.tableHeader(headers, widths)
		}
		plan := yp.Plan
		r.tableRow([]string{
			intToString(yp.Year),
			FormatCurrency(plan.TotalWithdrawals()),
			FormatCurrency(plan.TotalRMDs()),
			FormatCurrency(plan.RothConversion.Amount),
			FormatCurrency(plan.Tax.FederalTax),
			FormatCurrency(plan.Tax.StateTax),
			FormatCurrency(plan.Shortfall),
		}, widths, false)
	}
	r.pdf.Ln(6)
}

func (r *pdfReport) addBalanceTable(result *domain.ProjectionResult) {
	var decembers []domain.TimeSeriesRow
	for _, row := range result.Rows {
		if row.MonthDate.Month() == time.December {
			decembers = append(decembers, row)
		}
	}
	if len(decembers) == 0 {
		return
	}
	if r.pdf.GetY() > 200 {
		r.pdf.AddPage()
	}
	r.sectionHeader("Year-End Balances")

	widths := []float64{16, 28, 28, 28, 26, 24, 30}
	headers := []string{"Year", "Taxable", "Trad IRA", "Trad 401k", "Roth IRA", "HSA", "Total"}
	r.tableHeader(headers, widths)
	for _, row := range decembers {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.tableHeader(headers, widths)
		}
		r.tableRow([]string{
			intToString(row.MonthDate.Year()),
			FormatCurrency(row.BalanceTaxable),
			FormatCurrency(row.BalanceTraditionalIRA),
			FormatCurrency(row.BalanceTraditional401k),
			FormatCurrency(row.BalanceRothIRA),
			FormatCurrency(row.BalanceHSA),
			FormatCurrency(row.TotalBalance()),
		}, widths, false)
	}
	r.pdf.Ln(6)
}

func (r *pdfReport) addSimulationSummary(result *domain.SimulationResult) {
	r.sectionHeader("Run Parameters")
	r.keyValue("Run ID:", result.RunID.String())
	r.keyValue("Paths:", intToString(result.N))
	r.keyValue("Horizon:", FormatMonths(result.HorizonMonths))
	r.keyValue("Seed:", int64ToString(result.Seed))
	r.keyValue("Elapsed:", result.Duration.String())
	if result.Synthetic {
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.SetTextColor(200, 100, 0)
		r.pdf.CellFormat(contentWidth, 6,
			"Returns synthesized from scalar mean and volatility", "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)

	r.sectionHeader("Outcome")
	widths := []float64{100, 80}
	r.tableHeader([]string{"Metric", "Value"}, widths)
	r.tableRow([]string{"Success Rate", FormatPercent(result.SuccessRate)}, widths, true)
	r.tableRow([]string{"5th Percentile Terminal Wealth", FormatCurrency(result.Percentile5)}, widths, false)
	r.tableRow([]string{"Median Terminal Wealth", FormatCurrency(result.Median)}, widths, false)
	r.tableRow([]string{"95th Percentile Terminal Wealth", FormatCurrency(result.Percentile95)}, widths, false)
	r.tableRow([]string{"Average Terminal Wealth", FormatCurrency(result.AverageEnding)}, widths, false)
	r.tableRow([]string{"Probability Depleted", FormatPercent(result.PDepleted)}, widths, false)
	r.tableRow([]string{"Probability Starting Value Kept", FormatPercent(result.PPreserved)}, widths, false)
	r.tableRow([]string{"Probability Starting Value Doubled", FormatPercent(result.PDoubled)}, widths, false)
	if result.FailedPaths > 0 {
		r.tableRow([]string{"Paths Failed Numerically", intToString(result.FailedPaths)}, widths, false)
	}
	r.pdf.Ln(6)
}

func (r *pdfReport) addComparisonTable(result *domain.ScenarioComparison) {
	r.sectionHeader("Scenarios")
	widths := []float64{44, 36, 32, 36, 32}
	headers := []string{"Scenario", "Terminal Wealth", "Total Taxes", "Year 1 Net Flow", "Survives"}
	r.tableHeader(headers, widths)
	for _, s := range result.Scenarios {
		survives := "yes"
		if s.Depleted {
			survives = FormatMonths(s.MonthsSurvived)
		}
		r.tableRow([]string{
			s.Name,
			FormatCurrency(s.TerminalWealth),
			FormatCurrency(s.TotalTaxes),
			FormatCurrency(s.FirstYearNetFlow),
			survives,
		}, widths, false)
	}
	r.pdf.Ln(4)
	if best := result.Best(); best != "" {
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.SetTextColor(0, 100, 50)
		r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Highest terminal wealth: %s", best), "", 1, "L", false, 0, "")
	}
	if len(result.Recommendations) > 0 {
		r.pdf.Ln(2)
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.SetTextColor(50, 50, 50)
		for _, rec := range result.Recommendations {
			r.pdf.CellFormat(contentWidth, 5, "- "+rec, "", 1, "L", false, 0, "")
		}
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addDisclaimer() {
	r.pdf.Ln(8)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(128, 128, 128)
	r.pdf.MultiCell(contentWidth, 4,
		"Projections are based on the assumptions provided and actual results may vary. "+
			"This report is for informational purposes only and does not constitute financial advice.", "", "C", false)
}

func (r *pdfReport) sectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(4)
}

func (r *pdfReport) tableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(70, 90, 110)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 8)
	for i, h := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, h, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) tableRow(cells []string, widths []float64, bold bool) {
	if bold {
		r.pdf.SetFont("Arial", "B", 8)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 8)
		r.pdf.SetFillColor(250, 250, 250)
	}
	r.pdf.SetTextColor(50, 50, 50)
	for i, c := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, c, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) keyValue(label, value string) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(60, 5, label, "", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth-60, 5, value, "", 1, "L", false, 0, "")
}

func (r *pdfReport) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
