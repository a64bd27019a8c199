package mutate

import (
	"strings"
	"time"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

// Change describes what a mutation did. The zero Change means nothing happened.
type Change struct {
	Type    string
	ListID  string
	ItemID  string
	Payload map[string]any
}

func (c Change) Empty() bool { return c.Type == "" }

const (
	ChangeListCreate   = "list.create"
	ChangeListDelete   = "list.delete"
	ChangeListImport   = "list.import"
	ChangeItemAdd      = "item.add"
	ChangeItemToggle   = "item.toggle"
	ChangeItemDelete   = "item.delete"
	ChangeItemMove     = "item.move"
	ChangeItemCategory = "item.set_category"
)

// Engine applies list mutations. Every method returns a new snapshot; the input is
// never modified. Empty input or unresolved ids return the input and an empty Change.
type Engine struct {
	NewID     func(prefix string) string
	Now       func() time.Time
	Uppercase bool
}

func NewEngine(uppercase bool) *Engine {
	return &Engine{NewID: newRandomID, Now: time.Now, Uppercase: uppercase}
}

func (e *Engine) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// normalize collapses runs of whitespace, newlines included, so every item renders
// on a single row.
func (e *Engine) normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if e != nil && e.Uppercase {
		s = strings.ToUpper(s)
	}
	return s
}

func (e *Engine) newListID(s model.Snapshot) string {
	gen := newRandomID
	if e != nil && e.NewID != nil {
		gen = e.NewID
	}
	for {
		id := gen(ListIDPrefix)
		if s.ListIndex(id) < 0 {
			return id
		}
	}
}

func (e *Engine) newItemID(l *model.ShoppingList) string {
	gen := newRandomID
	if e != nil && e.NewID != nil {
		gen = e.NewID
	}
	for {
		id := gen(ItemIDPrefix)
		if l.ItemIndex(id) < 0 {
			return id
		}
	}
}

func (e *Engine) CreateList(s model.Snapshot, name string) (model.Snapshot, Change) {
	name = e.normalize(name)
	if name == "" {
		return s, Change{}
	}
	l := model.ShoppingList{
		ID:        e.newListID(s),
		Name:      name,
		Items:     []model.ListItem{},
		CreatedAt: e.now().UTC(),
	}
	out := s.Clone()
	out.Lists = append([]model.ShoppingList{l}, out.Lists...)
	return out, Change{Type: ChangeListCreate, ListID: l.ID, Payload: map[string]any{"name": l.Name}}
}

// ImportList prepends a list built from shared content. It always gets a fresh id
// and the current time, regardless of where the content came from.
func (e *Engine) ImportList(s model.Snapshot, name string, items []model.ListItem) (model.Snapshot, Change) {
	name = e.normalize(name)
	if name == "" {
		return s, Change{}
	}
	l := model.ShoppingList{
		ID:        e.newListID(s),
		Name:      name,
		Items:     make([]model.ListItem, 0, len(items)),
		CreatedAt: e.now().UTC(),
	}
	for _, it := range items {
		text := e.normalize(it.Text)
		if text == "" {
			continue
		}
		l.Items = append(l.Items, model.ListItem{
			ID:        e.newItemID(&l),
			Text:      text,
			Completed: it.Completed,
			Category:  strings.TrimSpace(it.Category),
		})
	}
	out := s.Clone()
	out.Lists = append([]model.ShoppingList{l}, out.Lists...)
	return out, Change{Type: ChangeListImport, ListID: l.ID, Payload: map[string]any{"name": l.Name, "items": len(l.Items)}}
}

func (e *Engine) DeleteList(s model.Snapshot, listID string) (model.Snapshot, Change) {
	idx := s.ListIndex(strings.TrimSpace(listID))
	if idx < 0 {
		return s, Change{}
	}
	out := s.Clone()
	id, name := out.Lists[idx].ID, out.Lists[idx].Name
	out.Lists = append(out.Lists[:idx], out.Lists[idx+1:]...)
	return out, Change{Type: ChangeListDelete, ListID: id, Payload: map[string]any{"name": name}}
}

func (e *Engine) AddItem(s model.Snapshot, listID, text string) (model.Snapshot, Change) {
	text = e.normalize(text)
	if text == "" {
		return s, Change{}
	}
	out := s.Clone()
	l, ok := out.FindList(listID)
	if !ok {
		return s, Change{}
	}
	it := model.ListItem{ID: e.newItemID(l), Text: text}
	l.Items = append(l.Items, it)
	return out, Change{Type: ChangeItemAdd, ListID: l.ID, ItemID: it.ID, Payload: map[string]any{"text": it.Text}}
}

func (e *Engine) ToggleItem(s model.Snapshot, listID, itemID string) (model.Snapshot, Change) {
	out := s.Clone()
	l, ok := out.FindList(listID)
	if !ok {
		return s, Change{}
	}
	it, ok := l.FindItem(itemID)
	if !ok {
		return s, Change{}
	}
	it.Completed = !it.Completed
	return out, Change{Type: ChangeItemToggle, ListID: l.ID, ItemID: it.ID, Payload: map[string]any{"completed": it.Completed}}
}

func (e *Engine) DeleteItem(s model.Snapshot, listID, itemID string) (model.Snapshot, Change) {
	out := s.Clone()
	l, ok := out.FindList(listID)
	if !ok {
		return s, Change{}
	}
	idx := l.ItemIndex(itemID)
	if idx < 0 {
		return s, Change{}
	}
	id, text := l.Items[idx].ID, l.Items[idx].Text
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	return out, Change{Type: ChangeItemDelete, ListID: l.ID, ItemID: id, Payload: map[string]any{"text": text}}
}

// MoveItem removes the item at from and inserts it at to, where to is an index
// into the sequence after removal. from out of range is a no-op; to is clamped.
func (e *Engine) MoveItem(s model.Snapshot, listID string, from, to int) (model.Snapshot, Change) {
	l, ok := s.FindList(listID)
	if !ok {
		return s, Change{}
	}
	n := len(l.Items)
	if from < 0 || from >= n {
		return s, Change{}
	}
	if to < 0 {
		to = 0
	}
	if to > n-1 {
		to = n - 1
	}
	if from == to {
		return s, Change{}
	}
	out := s.Clone()
	ol, _ := out.FindList(listID)
	ol.Items = Splice(ol.Items, from, to)
	return out, Change{
		Type:    ChangeItemMove,
		ListID:  ol.ID,
		ItemID:  ol.Items[to].ID,
		Payload: map[string]any{"from": from, "to": to},
	}
}

func (e *Engine) SetCategory(s model.Snapshot, listID, itemID, category string) (model.Snapshot, Change) {
	category = strings.TrimSpace(category)
	out := s.Clone()
	l, ok := out.FindList(listID)
	if !ok {
		return s, Change{}
	}
	it, ok := l.FindItem(itemID)
	if !ok || it.Category == category {
		return s, Change{}
	}
	prev := it.Category
	it.Category = category
	return out, Change{Type: ChangeItemCategory, ListID: l.ID, ItemID: it.ID, Payload: map[string]any{"from": prev, "to": category}}
}

// Splice returns a copy of items with the element at from moved to to.
// Both indices must be in range.
func Splice[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	moved := items[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}
