package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorIris).
			Foreground(colorWhite)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorSlate).
			PaddingLeft(1)

	dirStyle = lipgloss.NewStyle().
			Foreground(colorIris)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorIris).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(colorSlate).
			Faint(true)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")) // Yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSlate)
)
