package cli

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for command output.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red
	Success: lipgloss.Color("#00B894"), // Green
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
}

// styles holds the lipgloss styles shared by the list commands.
var styles = struct {
	Header    lipgloss.Style
	ID        lipgloss.Style
	Pending   lipgloss.Style
	Completed lipgloss.Style
	Muted     lipgloss.Style
	Failed    lipgloss.Style
}{
	Header:    lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
	ID:        lipgloss.NewStyle().Foreground(Colors.Muted),
	Pending:   lipgloss.NewStyle().Foreground(Colors.Warning),
	Completed: lipgloss.NewStyle().Foreground(Colors.Success),
	Muted:     lipgloss.NewStyle().Foreground(Colors.Muted),
	Failed:    lipgloss.NewStyle().Foreground(Colors.Error),
}
