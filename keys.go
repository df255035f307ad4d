package main

import "github.com/charmbracelet/bubbles/key"

// -------------------- KEY BINDINGS --------------------

type keyMap struct {
	Quit       key.Binding
	Connect    key.Binding
	Disconnect key.Binding
	Copy       key.Binding
	Accounts   key.Binding
	Transfer   key.Binding
	Refresh    key.Binding
	Providers  key.Binding
	Details    key.Binding
	Log        key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Help       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Connect, k.Transfer, k.Log, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Connect, k.Disconnect, k.Copy, k.Accounts},
		{k.Details, k.Transfer, k.Refresh, k.Providers},
		{k.Log, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Connect:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect wallet")),
	Disconnect: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "disconnect")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy address")),
	Accounts:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accounts")),
	Transfer:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transfer bottles")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Providers:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "wallet providers")),
	Details:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "token details")),
	Log:        key.NewBinding(key.WithKeys("l", "L"), key.WithHelp("l", "debug log")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
}

// wizardKeyMap holds the bindings active while the transfer dialog is open
type wizardKeyMap struct {
	Continue  key.Binding
	Previous  key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	Label     key.Binding
	Visit     key.Binding
}

var wizardKeys = wizardKeyMap{
	Continue:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
	Previous:  key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "previous")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	Label:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "wine label")),
	Visit:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "copy InterCellar link")),
}
