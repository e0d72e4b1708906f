package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Act     key.Binding
	Preset  key.Binding
	Timer   key.Binding
	Reset   key.Binding
	ClaimXP key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next view")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev view")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Act:     key.NewBinding(key.WithKeys(" ", "c", "enter"), key.WithHelp("space", "complete/toggle/start")),
		Preset:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next preset")),
		Timer:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/pause timer")),
		Reset:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset timer")),
		ClaimXP: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "claim focus xp")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Act, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.Act, k.Refresh},
		{k.Preset, k.Timer, k.Reset, k.ClaimXP},
		{k.Help, k.Quit},
	}
}
