// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a menu or scrolls a viewport.
	Up key.Binding

	// Down navigates down in a menu or scrolls a viewport.
	Down key.Binding

	// Select confirms a menu entry or a form answer.
	Select key.Binding

	// Open opens the saved script folder.
	Open key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open folder"),
		),
	}
}

// MenuHelp returns keybindings shown under a menu.
func (k *KeyMap) MenuHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Back, k.Quit}
}

// ViewerHelp returns keybindings shown under a JSON viewer.
func (k *KeyMap) ViewerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

// ResultHelp returns keybindings shown under an onboarding result.
func (k *KeyMap) ResultHelp(hasScript bool) []key.Binding {
	if hasScript {
		return []key.Binding{k.Open, k.Up, k.Back}
	}
	return k.ViewerHelp()
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Open, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
