package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the shell-wide bindings. Screen bindings live with their screens.
type keyMap struct {
	Back       key.Binding
	SoftBack   key.Binding
	Network    key.Binding
	Sync       key.Binding
	Quit       key.Binding
	screenHelp []key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "hardware back")),
		SoftBack: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "back")),
		Network:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "toggle network")),
		Sync:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sync now")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	out := append([]key.Binding{}, k.screenHelp...)
	return append(out, k.Back, k.SoftBack, k.Network, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.screenHelp, {k.Back, k.SoftBack, k.Network, k.Sync, k.Quit}}
}
