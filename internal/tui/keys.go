package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type homeKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	New    key.Binding
	Delete key.Binding
	Import key.Binding
	Quit   key.Binding
}

func (k homeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.New, k.Delete, k.Import, k.Quit}
}

func (k homeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Open}, {k.New, k.Delete, k.Import, k.Quit}}
}

type listKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Grab       key.Binding
	Drop       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Suggest    key.Binding
	TakeChip   key.Binding
	Share      key.Binding
	Back       key.Binding
	Quit       key.Binding
	GrabUp     key.Binding
	GrabDown   key.Binding
	GrabCancel key.Binding
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Grab, k.Suggest, k.TakeChip, k.Share, k.Back}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.Grab, k.MoveUp, k.MoveDown},
		{k.Add, k.Suggest, k.TakeChip, k.Share},
		{k.Back, k.Quit},
	}
}

// grabHelp is shown while a keyboard drag is in progress.
func (k listKeyMap) grabHelp() []key.Binding {
	return []key.Binding{k.GrabUp, k.GrabDown, k.Drop, k.GrabCancel}
}

var homeKeys = homeKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:   key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
	Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import link")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var listKeys = listKeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "check")),
	Delete:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
	Grab:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
	Drop:       key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter", "drop")),
	MoveUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	Suggest:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "suggest")),
	TakeChip:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "add suggestion")),
	Share:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "share")),
	Back:       key.NewBinding(key.WithKeys("esc", "backspace", "left", "h"), key.WithHelp("esc", "back")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	GrabUp:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	GrabDown:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	GrabCancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
