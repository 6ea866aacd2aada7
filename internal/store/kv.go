package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the application's SQLite database. The same file holds the
// content collections and the session table.
func OpenDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	// WAL mode keeps readers unblocked while a write is in flight.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	return db, nil
}

// KV is a byte-blob key/value table, the server-side analog of browser
// local storage: one serialized collection per key.
type KV struct {
	db *sqlx.DB
}

// NewKV wraps an open database. The `collections` table is created by the
// boot migrations.
func NewKV(db *sqlx.DB) *KV {
	return &KV{db: db}
}

// Get retrieves a value. A missing key returns nil without an error.
func (k *KV) Get(key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM collections WHERE key = ?`
	if err := k.db.Get(&value, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Put writes a value, replacing any previous one.
func (k *KV) Put(key string, value []byte) error {
	query := `INSERT OR REPLACE INTO collections (key, value, updated_at) VALUES (?, ?, ?)`
	if _, err := k.db.Exec(query, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}
