package tui

import "github.com/horizonfp/horizon/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	// Colors
	ColorPrimary = tuistyles.ColorPrimary
	ColorSuccess = tuistyles.ColorSuccess
	ColorDanger  = tuistyles.ColorDanger
	ColorMuted   = tuistyles.ColorMuted

	// Base styles
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	StatusKeyStyle      = tuistyles.StatusKeyStyle
	BorderStyle         = tuistyles.BorderStyle
	MetricLabelStyle    = tuistyles.MetricLabelStyle
	MetricValueStyle    = tuistyles.MetricValueStyle
	MetricPositiveStyle = tuistyles.MetricPositiveStyle
	MetricNegativeStyle = tuistyles.MetricNegativeStyle
	ErrorStyle          = tuistyles.ErrorStyle
)

// Re-export helper functions
var (
	FormatCurrency = tuistyles.FormatCurrency
)
