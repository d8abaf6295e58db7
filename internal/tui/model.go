// Package tui renders a live Monte Carlo run monitor: a progress view while
// paths execute and a summary panel once the simulation completes. The
// calculation itself runs outside the program; the caller feeds ProgressMsg
// and CompleteMsg in through Program.Send.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/horizonfp/horizon/internal/domain"
)

// targetSuccessRate is the threshold the summary panel grades against.
const targetSuccessRate = 0.90

// Model represents the simulation monitor state
type Model struct {
	// Run identity
	scenario string

	// Progress
	total     int
	completed int
	startedAt time.Time
	spinner   spinner.Model

	// Terminal dimensions
	width  int
	height int

	// Outcome
	result      *domain.SimulationResult
	err         error
	done        bool
	interrupted bool
}

// NewModel creates a monitor for one simulation run.
func NewModel(scenario string, totalPaths int) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorPrimary)),
	)
	return Model{
		scenario:  scenario,
		total:     totalPaths,
		startedAt: time.Now(),
		spinner:   sp,
		width:     80,
		height:    24,
	}
}

// Init starts the spinner animation (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Done reports whether the simulation finished before the program exited.
func (m Model) Done() bool {
	return m.done
}

// Interrupted reports whether the user quit while paths were running.
func (m Model) Interrupted() bool {
	return m.interrupted
}
