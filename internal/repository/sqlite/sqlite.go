package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/user-service/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DefaultDSN names a shared in-memory database. Its contents vanish with the process.
const DefaultDSN = "file:users?mode=memory&cache=shared"

// DB wraps a SQLite connection and hands out repositories bound to it.
type DB struct {
	SqlDB *sql.DB
}

// New opens the SQLite database identified by dsn, which may be a file path
// or a "file:" URI. Connections are limited to one so that unique checks and
// writes are serialized.
func New(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	// WAL has no effect on in-memory databases and is harmless there.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Users returns a UserRepository backed by this database.
func (d *DB) Users() *UserRepository {
	return NewUserRepository(d)
}
