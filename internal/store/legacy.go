package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

// wireList is the lists.json shape written by the browser app: createdAt is unix ms.
type wireList struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Items     []model.ListItem `json:"items"`
	CreatedAt int64            `json:"createdAt"`
}

func decodeLegacyLists(b []byte) (*model.Snapshot, error) {
	var ws []wireList
	if err := json.Unmarshal(b, &ws); err != nil {
		return nil, err
	}
	out := &model.Snapshot{Lists: make([]model.ShoppingList, 0, len(ws))}
	seenLists := map[string]bool{}
	for _, w := range ws {
		id := strings.TrimSpace(w.ID)
		if id == "" || seenLists[id] {
			continue
		}
		seenLists[id] = true
		l := model.ShoppingList{
			ID:        id,
			Name:      w.Name,
			Items:     make([]model.ListItem, 0, len(w.Items)),
			CreatedAt: time.UnixMilli(w.CreatedAt).UTC(),
		}
		seenItems := map[string]bool{}
		for _, it := range w.Items {
			it.ID = strings.TrimSpace(it.ID)
			if it.ID == "" || seenItems[it.ID] {
				continue
			}
			seenItems[it.ID] = true
			l.Items = append(l.Items, it)
		}
		out.Lists = append(out.Lists, l)
	}
	return out, nil
}
