package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the list-mode key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Reload      key.Binding
	Delete      key.Binding
	EditKey     key.Binding
	EditValue   key.Binding
	New         key.Binding
	Quit        key.Binding
	Commit      key.Binding
	Cancel      key.Binding
	DeleteInput key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "scroll value"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "scroll value"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		EditKey: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit key"),
		),
		EditValue: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "edit value"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		DeleteInput: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete char"),
		),
	}
}

// ShortHelp implements help.KeyMap for list mode.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Right, k.EditKey, k.EditValue, k.New, k.Delete, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.EditKey, k.EditValue, k.New, k.Delete},
		{k.Reload, k.Quit},
	}
}

// inputKeys is the help shown while editing.
type inputKeys struct {
	KeyMap
}

func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Cancel, k.DeleteInput}
}

func (k inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
