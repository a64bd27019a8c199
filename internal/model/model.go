package model

import (
	"strings"
	"time"
)

type ListItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Category  string `json:"category,omitempty"`
}

type ShoppingList struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Items     []ListItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Snapshot is the full state of all lists at a point in time.
// Lists are kept newest-first.
type Snapshot struct {
	Lists []ShoppingList `json:"lists"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}

// Clone returns a deep copy. Mutations never touch the snapshot they were given.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Lists: make([]ShoppingList, len(s.Lists))}
	for i, l := range s.Lists {
		out.Lists[i] = l.Clone()
	}
	return out
}

func (l ShoppingList) Clone() ShoppingList {
	cp := l
	cp.Items = append([]ListItem{}, l.Items...)
	return cp
}

func (s *Snapshot) FindList(id string) (*ShoppingList, bool) {
	id = strings.TrimSpace(id)
	if s == nil || id == "" {
		return nil, false
	}
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return &s.Lists[i], true
		}
	}
	return nil, false
}

// ListIndex returns the position of the list with the given id, or -1.
func (s Snapshot) ListIndex(id string) int {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return i
		}
	}
	return -1
}

// ResolveList finds a list by id first, then by case-insensitive name.
func (s *Snapshot) ResolveList(ref string) (*ShoppingList, bool) {
	if l, ok := s.FindList(ref); ok {
		return l, true
	}
	ref = strings.TrimSpace(ref)
	if s == nil || ref == "" {
		return nil, false
	}
	for i := range s.Lists {
		if strings.EqualFold(strings.TrimSpace(s.Lists[i].Name), ref) {
			return &s.Lists[i], true
		}
	}
	return nil, false
}

func (l *ShoppingList) FindItem(id string) (*ListItem, bool) {
	i := l.ItemIndex(id)
	if i < 0 {
		return nil, false
	}
	return &l.Items[i], true
}

func (l *ShoppingList) ItemIndex(id string) int {
	id = strings.TrimSpace(id)
	if l == nil || id == "" {
		return -1
	}
	for i := range l.Items {
		if l.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l ShoppingList) ItemTexts() []string {
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, it.Text)
	}
	return out
}

func (l ShoppingList) ItemIDs() []string {
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, it.ID)
	}
	return out
}

func (l ShoppingList) CompletedCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Completed {
			n++
		}
	}
	return n
}
