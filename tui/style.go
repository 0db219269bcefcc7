package tui

import "github.com/charmbracelet/lipgloss"

// Styles used throughout the TUI.
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleCursor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	styleDescription = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	styleCards = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleRerolled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	// Difficulty tint buckets: easy, medium, hard.
	styleEasy = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	styleMedium = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleHard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// difficultyStyle picks the tint bucket for a 1-10 difficulty.
func difficultyStyle(difficulty int) lipgloss.Style {
	switch {
	case difficulty <= 3:
		return styleEasy
	case difficulty <= 7:
		return styleMedium
	default:
		return styleHard
	}
}
