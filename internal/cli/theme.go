package cli

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for terminal output.
type Theme struct {
	Title   lipgloss.Color
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

var defaultTheme = Theme{
	Title:   lipgloss.Color("#AF87FF"), // violet
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(defaultTheme.Title).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(defaultTheme.Status)
	successStyle = lipgloss.NewStyle().Foreground(defaultTheme.Success).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(defaultTheme.Error).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(defaultTheme.Hint).Italic(true)
)
