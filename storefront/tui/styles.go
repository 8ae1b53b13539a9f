// Package tui is the terminal storefront: menu, cart, checkout and order tracking.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	tomato = lipgloss.Color("#e53935")
	basil  = lipgloss.Color("#8BC34A")
	crust  = lipgloss.Color("#FFC107")
	flour  = lipgloss.Color("#9e9e9e")
)

// Styles holds the lipgloss styles used by every screen.
type Styles struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	ActTab   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Price    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Banner   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the storefront palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(tomato),
		Tab:      lipgloss.NewStyle().Padding(0, 1).Foreground(flour),
		ActTab:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(basil),
		Muted:    lipgloss.NewStyle().Foreground(flour),
		Price:    lipgloss.NewStyle().Foreground(crust),
		Error:    lipgloss.NewStyle().Foreground(tomato),
		Success:  lipgloss.NewStyle().Foreground(basil),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tomato).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(flour).Italic(true),
	}
}
