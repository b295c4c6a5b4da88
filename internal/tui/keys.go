package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Add      key.Binding
	Course   key.Binding
	Done     key.Binding
	Delete   key.Binding
	Status   key.Binding
	Sort     key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Refresh  key.Binding
	Priority key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "courses")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "assignments")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save/toggle")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add assignment")),
	Course:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new course")),
	Done:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
	Sort:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "cycle sort")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Priority: key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "priority")),
}
