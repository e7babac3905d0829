package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan
	ColorBlue      = lipgloss.Color("75")  // Blue

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	// Score badges
	StyleScoreHigh = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleScoreMid  = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleScoreLow  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	// Selection lists (init)
	StyleSelectTitle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectNormal = lipgloss.NewStyle().Foreground(ColorText)
	StyleSelectActive = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectDim    = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSelectBadge  = lipgloss.NewStyle().Foreground(ColorSuccess)

	// Semantic Prefix Styles
	StylePrefixStep  = lipgloss.NewStyle().Foreground(ColorText).Bold(true)  // Step headings
	StylePrefixDone  = lipgloss.NewStyle().Foreground(ColorSecondary)        // Dim detail lines
	StylePrefixWarn  = lipgloss.NewStyle().Foreground(ColorWarning)          // Orange for warnings
	StylePrefixError = lipgloss.NewStyle().Foreground(ColorError).Bold(true) // Red for errors
)

// ScoreStyle picks a badge style for a 1-10 quality score.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 8:
		return StyleScoreHigh
	case score >= 5:
		return StyleScoreMid
	default:
		return StyleScoreLow
	}
}
