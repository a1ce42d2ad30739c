package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
)

const historyTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	filename   TEXT PRIMARY KEY,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// migration is one schema change, named by its file.
type migration struct {
	name string
	sql  string
}

// Run brings the database schema up to date with the embedded migrations.
func Run(ctx context.Context, db *sql.DB) error {
	return RunFS(ctx, db, FS)
}

// RunFS applies, in file name order, every *.sql file at the root of fsys
// that schema_migrations does not list yet. A failing file leaves no trace:
// its statements and its history row share one transaction.
func RunFS(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	pending, err := loadMigrations(fsys)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, historyTable); err != nil {
		return fmt.Errorf("create migration history: %w", err)
	}
	done, err := appliedNames(ctx, db)
	if err != nil {
		return fmt.Errorf("read migration history: %w", err)
	}

	for _, m := range pending {
		if _, ok := done[m.name]; ok {
			slog.Debug("migration skipped", "file", m.name)
			continue
		}
		if err := m.apply(ctx, db); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
		slog.Info("migration applied", "file", m.name)
	}
	return nil
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	out := make([]migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		out = append(out, migration{name: name, sql: string(body)})
	}
	return out, nil
}

func appliedNames(ctx context.Context, db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = struct{}{}
	}
	return names, rows.Err()
}

func (m migration) apply(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES (?)`, m.name); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}
