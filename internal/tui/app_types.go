package tui

import "time"

type view int

const (
	viewHome view = iota
	viewList
)

func (v view) String() string {
	if v == viewList {
		return "list"
	}
	return "home"
}

func viewFromString(s string) view {
	if s == "list" {
		return viewList
	}
	return viewHome
}

type modalKind int

const (
	modalNone modalKind = iota
	modalNewList
	modalImport
	modalConfirmDeleteList
)

// dragSource records which backend started the current drag so input from the
// other one doesn't drive it.
type dragSource int

const (
	dragNone dragSource = iota
	dragKeyboard
	dragMouse
)

const minibufferAutoClearAfter = 4 * time.Second

// suggestionsMsg carries a finished fetch. It is dropped unless seq and listID
// still match the model.
type suggestionsMsg struct {
	seq    int
	listID string
	items  []string
}

type categorizedMsg struct {
	listID   string
	itemID   string
	category string
}

type shareDoneMsg struct {
	listName string
	via      string
	err      error
}

type minibufferClearMsg struct{ seq int }
