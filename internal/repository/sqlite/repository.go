package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"opdash/internal/errors"
	"opdash/internal/logging"
	"opdash/internal/repository"
	"opdash/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Gateway stores dashboard values in a single kv_store table
type Gateway struct {
	db *sql.DB
}

var _ repository.Gateway = (*Gateway)(nil)

// New opens (or creates) the database at dbPath and runs pending migrations
func New(dbPath string) (*Gateway, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", dbPath, err)
	}

	// Each connection to :memory: is a separate database.
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", dbPath, err)
	}

	logging.Debugf("sqlite gateway ready at %s", dbPath)
	return &Gateway{db: db}, nil
}

// Close closes the database connection
func (g *Gateway) Close() error {
	return g.db.Close()
}

// Load returns the value stored under key
func (g *Gateway) Load(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = ?`
	return QuerySingle(ctx, g.db, query, ScanValue, key, key)
}

// Save upserts all entries in one transaction
func (g *Gateway) Save(ctx context.Context, entries ...repository.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return ExecuteInTx(ctx, g.db, entries[0].Key, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, entry := range entries {
			if _, err := stmt.ExecContext(ctx, entry.Key, entry.Value); err != nil {
				return err
			}
		}
		return nil
	})
}
