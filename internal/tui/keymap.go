package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextScreen key.Binding
	PrevScreen key.Binding
	Down       key.Binding
	Up         key.Binding
	ViewTag    key.Binding
	Focus      key.Binding
	Close      key.Binding
	Layout     key.Binding
	Reload     key.Binding
	Settings   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextScreen: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "screen")),
		PrevScreen: key.NewBinding(key.WithKeys("shift+tab")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "select")),
		Up:         key.NewBinding(key.WithKeys("k", "up")),
		ViewTag:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "view tag")),
		Focus:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus")),
		Close:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
		Layout:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layout")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScreen, k.ViewTag, k.Down, k.Focus, k.Close, k.Layout, k.Reload, k.Settings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
