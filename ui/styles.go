// Package ui is the terminal host of the conversion page: a description
// input, the convert trigger, an error line and the diagram canvas, with the
// onboarding tour drawn as an overlay on top.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	lightForeground = lipgloss.Color("#101F38")
	lightMuted      = lipgloss.Color("#8a93a3")
	lightAccent     = lipgloss.Color("#1565C0")
	lightCard       = lipgloss.Color("#ffffff")

	darkForeground = lipgloss.Color("#f2f2f2")
	darkMuted      = lipgloss.Color("#5c6a82")
	darkAccent     = lipgloss.Color("#64B5F6")
	darkCard       = lipgloss.Color("#1a2536")

	destructive = lipgloss.Color("#e53935")
)

// Styles are the lipgloss styles of every page region.
type Styles struct {
	Title         lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonBusy    lipgloss.Style
	Error         lipgloss.Style
	Empty         lipgloss.Style
	Backdrop      lipgloss.Style
	Card          lipgloss.Style
	CardProgress  lipgloss.Style
	CardControl   lipgloss.Style
}

// DefaultStyles returns the styles for a dark or light terminal background.
func DefaultStyles(dark bool) Styles {
	fg, muted, accent, card := lightForeground, lightMuted, lightAccent, lightCard
	if dark {
		fg, muted, accent, card = darkForeground, darkMuted, darkAccent, darkCard
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted)
	button := box.Padding(0, 2).Foreground(fg)

	return Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		Input:         box,
		InputFocused:  box.BorderForeground(accent),
		Button:        button,
		ButtonFocused: button.BorderForeground(accent).Bold(true),
		ButtonBusy:    button.Foreground(muted).Italic(true),
		Error:         lipgloss.NewStyle().Foreground(destructive),
		Empty:         lipgloss.NewStyle().Foreground(muted).Italic(true),
		Backdrop:      lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Background(card).
			Foreground(fg).
			Padding(0, 1),
		CardProgress: lipgloss.NewStyle().Foreground(muted),
		CardControl:  lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}
