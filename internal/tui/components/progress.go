package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/horizonfp/horizon/internal/tui/tuistyles"
)

// ProgressBar displays a progress indicator
type ProgressBar struct {
	Current     int
	Total       int
	Width       int
	Label       string
	ShowPercent bool
	ShowCount   bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total int) *ProgressBar {
	return &ProgressBar{
		Current:     current,
		Total:       total,
		Width:       40,
		ShowPercent: true,
		ShowCount:   true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Percentage returns the completion percentage
func (p *ProgressBar) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Total) * 100
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(p.Label))
		content.WriteString("\n")
	}

	percentage := p.Percentage()
	filled := int(float64(p.Width) * percentage / 100)
	if filled > p.Width {
		filled = p.Width
	}
	empty := p.Width - filled

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("]")

	var stats []string
	if p.ShowPercent {
		percentStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorPrimary).
			Bold(true)
		stats = append(stats, percentStyle.Render(fmt.Sprintf("%.1f%%", percentage)))
	}
	if p.ShowCount {
		countStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		stats = append(stats, countStyle.Render(fmt.Sprintf("%d/%d", p.Current, p.Total)))
	}

	if len(stats) > 0 {
		content.WriteString(" ")
		content.WriteString(strings.Join(stats, " • "))
	}

	return content.String()
}
