package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Pane switching
	SwitchPane key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Ignore toggle on the selected row
	ToggleIgnore key.Binding

	// Exclusive filters
	OnlyIgnored   key.Binding
	OnlyNoDueDate key.Binding
	OnlyOverdue   key.Binding

	// Re-include toggles for the default view
	IncludeIgnored   key.Binding
	IncludeNoDueDate key.Binding
	IncludeOverdue   key.Binding

	// Status / course filter form
	Filters key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleIgnore: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "ignore/unignore"),
		),
		OnlyIgnored: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "ignored only"),
		),
		OnlyNoDueDate: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no due date only"),
		),
		OnlyOverdue: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "long overdue only"),
		),
		IncludeIgnored: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "include ignored"),
		),
		IncludeNoDueDate: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "include no due date"),
		),
		IncludeOverdue: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "include long overdue"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "status/course filters"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.SwitchPane,
		k.Refresh, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane, k.Back, k.Quit},
		{k.Refresh, k.ToggleIgnore, k.Filters, k.Help},
		{k.OnlyIgnored, k.OnlyNoDueDate, k.OnlyOverdue},
		{k.IncludeIgnored, k.IncludeNoDueDate, k.IncludeOverdue},
	}
}
