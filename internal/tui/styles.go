package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorPick    = lipgloss.Color("#2196F3")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#6b7785")
)

// Styles holds every lipgloss style the views use.
type Styles struct {
	Title    lipgloss.Style
	Cell     lipgloss.Style
	Picked   lipgloss.Style
	Mismatch lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Label    lipgloss.Style
	Valid    lipgloss.Style
	Warning  lipgloss.Style
	Invalid  lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the styles used by New.
func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(cellWidth).Padding(0, 1)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Cell:     cell,
		Picked:   cell.Foreground(colorPick).Bold(true),
		Mismatch: cell.Foreground(colorError).Bold(true),
		Status:   lipgloss.NewStyle().Italic(true),
		Help:     lipgloss.NewStyle().Foreground(colorMuted),
		Label:    lipgloss.NewStyle().Width(14),
		Valid:    lipgloss.NewStyle().Foreground(colorAccent),
		Warning:  lipgloss.NewStyle().Foreground(colorWarning),
		Invalid:  lipgloss.NewStyle().Foreground(colorError),
		Error:    lipgloss.NewStyle().Foreground(colorError).Bold(true),
	}
}
