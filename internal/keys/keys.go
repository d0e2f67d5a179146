// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the grid view.
type KeyMap struct {
	// Scrolling
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Selection
	Select     key.Binding
	SelectNext key.Binding
	SelectPrev key.Binding

	// Columns
	Widen         key.Binding
	Narrow        key.Binding
	ToggleFrozen  key.Binding
	CycleTemplate key.Binding

	// General
	Details    key.Binding
	Reload     key.Binding
	SaveLayout key.Binding
	Logs       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "scroll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "scroll right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first row"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last row"),
		),

		Select: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle selection"),
		),
		SelectNext: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "select next"),
		),
		SelectPrev: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "select previous"),
		),

		Widen: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "widen column"),
		),
		Narrow: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "narrow column"),
		),
		ToggleFrozen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle frozen column"),
		),
		CycleTemplate: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle template"),
		),

		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle details"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload data"),
		),
		SaveLayout: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save column layout"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log pane"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Details, k.Help, k.Quit}
}

// Group is a titled set of bindings shown together in the help overlay.
type Group struct {
	Title    string
	Bindings []key.Binding
}

// Groups returns the bindings by topic, in display order.
func (k KeyMap) Groups() []Group {
	return []Group{
		{"Scrolling", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End}},
		{"Selection", []key.Binding{k.Select, k.SelectNext, k.SelectPrev}},
		{"Columns", []key.Binding{k.Widen, k.Narrow, k.ToggleFrozen, k.CycleTemplate}},
		{"General", []key.Binding{k.Details, k.Reload, k.SaveLayout, k.Logs, k.Help, k.Quit}},
	}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	groups := k.Groups()
	out := make([][]key.Binding, len(groups))
	for i, g := range groups {
		out[i] = g.Bindings
	}
	return out
}
