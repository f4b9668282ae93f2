package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection to the leveltrack SQLite database.
type DB struct {
	*sql.DB
	Path string
}

// DefaultDBPath returns the default database path: ~/.leveltrack/leveltrack.db
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".leveltrack", "leveltrack.db"), nil
}

// connPragmas run on every connection the pool opens, not just the first.
const connPragmas = "?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Open opens (or creates) the SQLite database at the given path,
// configures pragmas, and runs migrations. Path is stored absolute so a
// server and a CLI started from different directories agree on it.
func Open(path string) (*DB, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, storageErr("resolve db path", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return nil, storageErr("create db dir", err)
	}

	sqlDB, err := sql.Open("sqlite", abs+connPragmas)
	if err != nil {
		return nil, storageErr("open sqlite", err)
	}

	return initDB(sqlDB, abs)
}

// OpenMemory opens an in-memory SQLite database for testing.
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, storageErr("open sqlite memory", err)
	}
	// Every pooled connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	return initDB(sqlDB, ":memory:")
}

func initDB(sqlDB *sql.DB, path string) (*DB, error) {
	db := &DB{DB: sqlDB, Path: path}
	if err := db.configurePragmas(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, storageErr("migrate", err)
	}
	return db, nil
}

func (db *DB) configurePragmas() error {
	// journal_mode is stored in the file, so setting it once is enough.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return storageErr("pragma journal_mode", err)
	}
	return nil
}

// Records returns the record operations bound to the database connection pool.
func (db *DB) Records() *Records {
	return &Records{q: db.DB}
}

// InTx runs fn inside a single transaction. The transaction commits when fn
// returns nil and rolls back otherwise; readers never see a partial result.
func (db *DB) InTx(ctx context.Context, fn func(*Records) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin tx", err)
	}

	if err := fn(&Records{q: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit tx", err)
	}
	return nil
}
