package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Convert    key.Binding
	Focus      key.Binding
	Blur       key.Binding
	Tour       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding

	// Active only while a tour card is showing.
	Advance key.Binding
	Dismiss key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Convert: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "convert"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "focus"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
		),
		Tour: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "tour"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "next"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close tour"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Convert, k.Focus, k.Tour, k.ScrollDown, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Convert, k.Focus, k.Tour},
		{k.ScrollUp, k.ScrollDown, k.Quit},
	}
}

// tourHelp is the help shown while the tour holds the input.
type tourHelp keyMap

func (k tourHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Dismiss, k.Quit}
}

func (k tourHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
