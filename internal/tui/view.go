package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/horizonfp/horizon/internal/tui/components"
)

// View renders the current state of the monitor
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.done:
		content = m.renderSummary()
	default:
		content = m.renderRunning()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and scenario breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Horizon - Monte Carlo Simulation")
	breadcrumb := SubtitleStyle.Render(m.scenario)
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb) + "\n"
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	if m.done {
		return ""
	}
	statusText := StatusKeyStyle.Render("q") + " cancel"
	return "\n" + StatusBarStyle.Width(m.width).Render(statusText)
}

// renderRunning renders the in-flight progress panel
func (m Model) renderRunning() string {
	bar := components.NewProgressBar(m.completed, m.total).
		WithLabel("Simulating paths").
		WithWidth(40)

	elapsed := time.Since(m.startedAt).Round(time.Second)

	lines := []string{
		m.spinner.View() + " Running scenario " + m.scenario,
		"",
		bar.Render(),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
	}

	return BorderStyle.Render(strings.Join(lines, "\n"))
}

// renderSummary renders the completed-run metric panel
func (m Model) renderSummary() string {
	r := m.result
	if r == nil {
		return ""
	}

	rate := r.SuccessRate.InexactFloat64()
	successCard := components.NewMetricCard("Success Rate",
		fmt.Sprintf("%.1f%%", rate*100)).
		WithTrend(rate >= targetSuccessRate,
			fmt.Sprintf("target %.0f%%", targetSuccessRate*100)).
		WithWidth(30)

	medianCard := components.NewMetricCard("Median Terminal",
		FormatCurrency(r.Median)).
		WithDescription(fmt.Sprintf("p5 %s / p95 %s",
			FormatCurrency(r.Percentile5), FormatCurrency(r.Percentile95))).
		WithWidth(30)

	grid := components.MetricGrid([]*components.MetricCard{successCard, medianCard}, 2)

	details := []string{
		components.NewMetricCard("Paths", fmt.Sprintf("%d", r.N)).RenderCompact(),
		components.NewMetricCard("Horizon", fmt.Sprintf("%d months", r.HorizonMonths)).RenderCompact(),
		components.NewMetricCard("Depleted", formatFraction(r.PDepleted)).RenderCompact(),
		components.NewMetricCard("Elapsed", r.Duration.Round(time.Millisecond).String()).RenderCompact(),
	}

	out := grid + "\n" + strings.Join(details, "   ")
	if r.Synthetic {
		out += "\n" + ErrorStyle.Render("synthetic returns: no covariance matrix configured")
	}
	return out
}

// renderError renders a failed run
func (m Model) renderError() string {
	return ErrorStyle.Render("simulation failed: "+m.err.Error()) + "\n"
}

func formatFraction(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
