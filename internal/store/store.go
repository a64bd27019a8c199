package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

const (
	sqliteFileName      = "seznam.sqlite"
	legacyListsFileName = "lists.json"
)

// Store persists snapshots under Dir. SQLite is the only source of truth; a legacy
// lists.json is imported once when the database is empty.
type Store struct {
	Dir string
}

// DefaultDir is $XDG_DATA_HOME/seznam, falling back to ~/.local/share/seznam.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); v != "" {
		return filepath.Join(v, "seznam"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "seznam"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: missing dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

func (s Store) legacyListsPath() string {
	return filepath.Join(filepath.Clean(s.Dir), legacyListsFileName)
}

// Persister is what the TUI and CLI need from durable storage.
type Persister interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snap *model.Snapshot) error
}

var _ Persister = Store{}
