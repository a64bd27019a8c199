package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/robiweb74/makupovalni-seznam/internal/model"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func runMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	path := s.sqlitePath()
	if err := runMigrations(path); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read while the TUI writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Load reads the snapshot. If the database has no lists but a legacy lists.json
// exists, it is imported once and then loaded from SQLite.
func (s Store) Load(ctx context.Context) (*model.Snapshot, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	imported, err := readMeta(ctx, db, "legacy_imported")
	if err != nil {
		return nil, err
	}
	if imported == "" {
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lists`).Scan(&n); err != nil {
			return nil, err
		}
		if n == 0 {
			if b, err := os.ReadFile(s.legacyListsPath()); err == nil && len(b) > 0 {
				legacy, err := decodeLegacyLists(b)
				if err != nil {
					return nil, fmt.Errorf("import %s: %w", legacyListsFileName, err)
				}
				if err := saveSnapshot(ctx, db, legacy); err != nil {
					return nil, err
				}
			}
		}
		if err := writeMeta(ctx, db, "legacy_imported", "1"); err != nil {
			return nil, err
		}
	}

	return loadSnapshot(ctx, db)
}

func (s Store) Save(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return saveSnapshot(ctx, db, snap)
}

// saveSnapshot replaces all rows. Lists are small, so a full rewrite keeps
// positions trivially contiguous.
func saveSnapshot(ctx context.Context, db *sql.DB, snap *model.Snapshot) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []string{"items", "lists"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()
	for li, l := range snap.Lists {
		if _, err := tx.ExecContext(ctx, `INSERT INTO lists(id, name, position, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			l.ID, l.Name, li, l.CreatedAt.UTC().UnixMilli(), nowMs); err != nil {
			return fmt.Errorf("save list %s: %w", l.ID, err)
		}
		for ii, it := range l.Items {
			if _, err := tx.ExecContext(ctx, `INSERT INTO items(list_id, id, position, text, completed, category) VALUES(?, ?, ?, ?, ?, ?)`,
				l.ID, it.ID, ii, it.Text, boolToInt(it.Completed), strings.TrimSpace(it.Category)); err != nil {
				return fmt.Errorf("save item %s/%s: %w", l.ID, it.ID, err)
			}
		}
	}
	return tx.Commit()
}

func loadSnapshot(ctx context.Context, db *sql.DB) (*model.Snapshot, error) {
	out := &model.Snapshot{Lists: []model.ShoppingList{}}

	rows, err := db.QueryContext(ctx, `SELECT id, name, created_at_unixms FROM lists ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	for rows.Next() {
		var l model.ShoppingList
		var createdMs int64
		if err := rows.Scan(&l.ID, &l.Name, &createdMs); err != nil {
			rows.Close()
			return nil, err
		}
		l.CreatedAt = time.UnixMilli(createdMs).UTC()
		l.Items = []model.ListItem{}
		index[l.ID] = len(out.Lists)
		out.Lists = append(out.Lists, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	irows, err := db.QueryContext(ctx, `SELECT list_id, id, text, completed, category FROM items ORDER BY list_id, position ASC`)
	if err != nil {
		return nil, err
	}
	defer irows.Close()
	for irows.Next() {
		var listID string
		var it model.ListItem
		var completed int
		if err := irows.Scan(&listID, &it.ID, &it.Text, &completed, &it.Category); err != nil {
			return nil, err
		}
		it.Completed = completed != 0
		if i, ok := index[listID]; ok {
			out.Lists[i].Items = append(out.Lists[i].Items, it)
		}
	}
	return out, irows.Err()
}

func readMeta(ctx context.Context, db *sql.DB, k string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return strings.TrimSpace(v), err
}

func writeMeta(ctx context.Context, db *sql.DB, k, v string) error {
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, k, v)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
