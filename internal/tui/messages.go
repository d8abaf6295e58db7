package tui

import (
	"github.com/horizonfp/horizon/internal/domain"
)

// Message types for the Bubble Tea update cycle

// ProgressMsg reports completed simulation paths
type ProgressMsg struct {
	Completed int
	Total     int
}

// CompleteMsg signals the simulation has finished
type CompleteMsg struct {
	Result *domain.SimulationResult
	Err    error
}
