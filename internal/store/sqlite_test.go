package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
	"github.com/robiweb74/makupovalni-seznam/internal/mutate"
)

func TestSQLiteStore_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	created := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	snap := &model.Snapshot{Lists: []model.ShoppingList{
		{
			ID:        "list-b",
			Name:      "NOVO",
			CreatedAt: created.Add(time.Hour),
			Items:     []model.ListItem{},
		},
		{
			ID:        "list-a",
			Name:      "TEDEN",
			CreatedAt: created,
			Items: []model.ListItem{
				{ID: "it-2", Text: "KRUH", Completed: true},
				{ID: "it-1", Text: "MLEKO", Category: "Mlečni"},
			},
		},
	}}
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Lists) != 2 || got.Lists[0].ID != "list-b" || got.Lists[1].ID != "list-a" {
		t.Fatalf("unexpected list order: %+v", got.Lists)
	}
	a := got.Lists[1]
	if !a.CreatedAt.Equal(created) {
		t.Fatalf("expected createdAt %v, got %v", created, a.CreatedAt)
	}
	if len(a.Items) != 2 || a.Items[0].ID != "it-2" || !a.Items[0].Completed || a.Items[1].Category != "Mlečni" {
		t.Fatalf("unexpected items: %+v", a.Items)
	}
	if got.Lists[0].Items == nil {
		t.Fatalf("expected empty items slice, not nil")
	}
}

func TestSQLiteStore_SaveReplacesAll(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	first := &model.Snapshot{Lists: []model.ShoppingList{{ID: "list-a", Name: "A", Items: []model.ListItem{{ID: "it-1", Text: "X"}}}}}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, &model.Snapshot{}); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Lists) != 0 {
		t.Fatalf("expected no lists, got %+v", got.Lists)
	}
}

func TestLoad_ImportsLegacyListsOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	legacy := `[
		{"id":"1700000000000","name":"TRGOVINA","createdAt":1700000000000,
		 "items":[{"id":"a","text":"JAJCA","completed":false},{"id":"a","text":"DUP","completed":false},{"id":"b","text":"SOL","completed":true,"category":"Začimbe"}]}
	]`
	if err := os.WriteFile(filepath.Join(dir, legacyListsFileName), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}
	s := Store{Dir: dir}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Lists) != 1 {
		t.Fatalf("expected 1 imported list, got %d", len(got.Lists))
	}
	l := got.Lists[0]
	if l.Name != "TRGOVINA" || !l.CreatedAt.Equal(time.UnixMilli(1700000000000)) {
		t.Fatalf("unexpected list: %+v", l)
	}
	if len(l.Items) != 2 || l.Items[1].Category != "Začimbe" || !l.Items[1].Completed {
		t.Fatalf("expected duplicate item ids dropped, got %+v", l.Items)
	}

	// Deleting everything must not bring the legacy data back.
	if err := s.Save(ctx, &model.Snapshot{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Lists) != 0 {
		t.Fatalf("expected legacy import to run once, got %+v", got.Lists)
	}
}

func TestLoad_InvalidLegacyFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, legacyListsFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}
	if _, err := (Store{Dir: dir}).Load(context.Background()); err == nil {
		t.Fatalf("expected error for invalid lists.json")
	}
}

func TestCommit_JournalsChange(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	e := mutate.NewEngine(true)

	snap, ch := e.CreateList(model.Snapshot{}, "teden")
	if err := s.Commit(ctx, &snap, ch); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	snap, ch = e.AddItem(snap, ch.ListID, "mleko")
	if err := s.Commit(ctx, &snap, ch); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := s.Commit(ctx, &snap, mutate.Change{}); err != nil {
		t.Fatalf("Commit no-op: %v", err)
	}

	evs, err := s.ReadEventsTail(ctx, 0)
	if err != nil {
		t.Fatalf("ReadEventsTail: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].Type != mutate.ChangeListCreate || evs[1].Type != mutate.ChangeItemAdd {
		t.Fatalf("unexpected event order: %q, %q", evs[0].Type, evs[1].Type)
	}
	if evs[1].EntityID != ch.ItemID || evs[0].ID == "" {
		t.Fatalf("unexpected event: %+v", evs[1])
	}
	p, ok := evs[1].Payload.(map[string]any)
	if !ok || p["text"] != "MLEKO" || p["list"] != ch.ListID {
		t.Fatalf("unexpected payload: %#v", evs[1].Payload)
	}

	tail, err := s.ReadEventsTail(ctx, 1)
	if err != nil {
		t.Fatalf("ReadEventsTail: %v", err)
	}
	if len(tail) != 1 || tail[0].Type != mutate.ChangeItemAdd {
		t.Fatalf("expected newest event only, got %+v", tail)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Lists) != 1 || len(got.Lists[0].Items) != 1 {
		t.Fatalf("expected committed snapshot, got %+v", got)
	}
}

func TestAppendEvent_Validates(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent(context.Background(), "", "x", nil); err == nil {
		t.Fatalf("expected error for missing type")
	}
	if err := s.AppendEvent(context.Background(), "item.add", " ", nil); err == nil {
		t.Fatalf("expected error for missing entity")
	}
}
