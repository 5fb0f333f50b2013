package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the handful of lipgloss styles the watch TUI renders
// with. Trimmed to exactly the fields a caller in this repo references;
// add a field here only once something actually renders with it.
type Theme struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Help    lipgloss.Style
}

// Default returns the default theme.
func Default() *Theme {
	return &Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3498DB")).
			Bold(true).
			MarginBottom(1),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#27AE60")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95A5A6")).
			Italic(true),
	}
}

// Current holds the active theme.
var Current = Default()
