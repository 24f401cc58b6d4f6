package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the simulator.
type KeyMap struct {
	// Overlay
	Expand   key.Binding
	Collapse key.Binding
	Leave    key.Binding
	Enable   key.Binding
	Notch    key.Binding
	Family   key.Binding

	// Countdown
	Timer key.Binding
	Reset key.Binding

	// Simulation
	Zones key.Binding
	Slow  key.Binding
	Pause key.Binding
	Copy  key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Expand, k.Collapse, k.Timer, k.Zones, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Expand, k.Collapse, k.Leave, k.Enable},
		{k.Notch, k.Family, k.Timer, k.Reset},
		{k.Zones, k.Slow, k.Pause, k.Copy},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse"),
		),
		Leave: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "pointer leaves"),
		),
		Enable: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "enable/disable"),
		),
		Notch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "toggle notch"),
		),
		Family: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "next shape"),
		),
		Timer: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t/space", "start/pause timer"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset timer"),
		),
		Zones: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "show zones"),
		),
		Slow: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "slow motion"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause clock"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy svg"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
