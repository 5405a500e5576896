package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the browser.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Pin       key.Binding
	RootUp    key.Binding
	RootDown  key.Binding
	Tuning    key.Binding
	Spelling  key.Binding
	MoreFrets key.Binding
	LessFrets key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		RootUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "root up"),
		),
		RootDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "root down"),
		),
		Tuning: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tuning"),
		),
		Spelling: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "♭/♯"),
		),
		MoreFrets: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "frets"),
		),
		LessFrets: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "frets"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FooterBindings returns the bindings shown in the footer.
func FooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Enter, km.Back, km.Pin, km.RootDown, km.RootUp, km.Tuning, km.Spelling, km.Quit}
}
