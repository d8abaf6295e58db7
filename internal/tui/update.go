package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.completed = msg.Completed
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, nil

	case CompleteMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		if m.result != nil {
			m.completed = m.result.N
			m.total = m.result.N
		}
		// The final frame stays on screen after the program exits.
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if !m.done {
			m.interrupted = true
		}
		return m, tea.Quit
	}
	return m, nil
}
