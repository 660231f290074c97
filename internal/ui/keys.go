package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding

	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	EnableAll key.Binding

	OrbitLeft  key.Binding
	OrbitRight key.Binding
	OrbitUp    key.Binding
	OrbitDown  key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Reset      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log pane"),
		),

		Up: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("j/k", "select label"),
		),
		Down: key.NewBinding(
			key.WithKeys("j"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle label"),
		),
		EnableAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "enable all"),
		),

		OrbitLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/→ a/d", "orbit"),
		),
		OrbitRight: key.NewBinding(
			key.WithKeys("right", "d"),
		),
		OrbitUp: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/↓ w/s", "tilt"),
		),
		OrbitDown: key.NewBinding(
			key.WithKeys("down", "s"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "zoom"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset view"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.OrbitLeft, k.ZoomIn, k.Logs, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Toggle, k.EnableAll},
		{k.OrbitLeft, k.OrbitUp, k.ZoomIn, k.Reset},
		{k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
