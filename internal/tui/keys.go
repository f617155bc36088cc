package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Switch  key.Binding
	Search  key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Escape  key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Switch:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch side")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "pick asset")),
	Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Up:      key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:    key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// popularIndex maps the digit keys 1-9 onto the popular choices.
func popularIndex(msg string, n int) (int, bool) {
	if len(msg) != 1 || msg[0] < '1' || msg[0] > '9' {
		return 0, false
	}
	i := int(msg[0] - '1')
	return i, i < n
}
