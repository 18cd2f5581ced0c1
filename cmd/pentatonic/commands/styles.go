package commands

import "github.com/charmbracelet/lipgloss"

// Terminal styles shared by the display commands.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff9f"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)
