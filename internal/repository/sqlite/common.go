package sqlite

import (
	"context"
	"database/sql"

	"opdash/internal/errors"
)

// HandleStorageError converts database errors to structured app errors
func HandleStorageError(operation string, key string, err error) error {
	return errors.NewStorageError(operation, key, err)
}

// HandleNoRowsError reports sql.ErrNoRows as "not found" and leaves other
// errors unchanged
func HandleNoRowsError(err error) (bool, error) {
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// QuerySingle executes a query that returns at most one row and scans it.
// The boolean result is false when no row matched.
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (T, error), key string, args ...interface{}) (T, bool, error) {
	var zero T
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	found, err := HandleNoRowsError(err)
	if err != nil {
		return zero, false, HandleStorageError("load", key, err)
	}
	if !found {
		return zero, false, nil
	}
	return result, true, nil
}

// ExecuteInTx runs fn inside a transaction, committing on success and
// rolling back on any error
func ExecuteInTx(ctx context.Context, db *sql.DB, key string, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return HandleStorageError("begin transaction", key, err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return HandleStorageError("save", key, err)
	}

	if err := tx.Commit(); err != nil {
		return HandleStorageError("commit", key, err)
	}
	return nil
}
