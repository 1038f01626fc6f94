package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the list view. Form and confirm
// views route input to their own widgets and only honor Esc/Enter.
type keyMap struct {
	Quit      key.Binding
	Search    key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	CycleSort key.Binding
	Open      key.Binding
	Create    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Stats     key.Binding
	Login     key.Binding
	LoginAdm  key.Binding
	Logout    key.Binding
	Refresh   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		CycleSort: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Create:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Stats:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "stats")),
		Login:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "sign in")),
		LoginAdm:  key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "sign in as admin")),
		Logout:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}
