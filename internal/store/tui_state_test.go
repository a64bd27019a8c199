package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}

	st0, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 || st0.View != "" {
		t.Fatalf("expected default state; got %#v", st0)
	}

	want := &TUIState{View: "list", ActiveListID: "list-a"}
	if err := s.SaveTUIState(want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if *got != (TUIState{Version: 1, View: "list", ActiveListID: "list-a"}) {
		t.Fatalf("unexpected state: %#v", got)
	}
}

func TestTUIState_CorruptIsDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tuiStateFileName), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := (Store{Dir: dir}).LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Version != 1 || st.View != "" {
		t.Fatalf("expected default state; got %#v", st)
	}
}
