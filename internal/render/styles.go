// Package render formats comparison results, action views, and diffs
// for the terminal.
package render

import "github.com/charmbracelet/lipgloss"

// Styles carries the lipgloss styles used by every report. Disabled
// styles render plain text, for --no-color and for tests.
type Styles struct {
	Header     lipgloss.Style
	Key        lipgloss.Style
	Value      lipgloss.Style
	LogName    lipgloss.Style
	Absent     lipgloss.Style
	Good       lipgloss.Style
	Warn       lipgloss.Style
	Underline  lipgloss.Style
	DiffAdded  lipgloss.Style
	DiffRemove lipgloss.Style
}

// NewStyles returns the default color scheme, or pass-through styles
// when color is false.
func NewStyles(color bool) Styles {
	if !color {
		return Styles{}
	}
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true),
		Key:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Value:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LogName:    lipgloss.NewStyle().Faint(true),
		Absent:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Good:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Underline:  lipgloss.NewStyle().Underline(true),
		DiffAdded:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		DiffRemove: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
