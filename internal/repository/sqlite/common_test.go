package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "opdash/internal/errors"
)

func TestHandleStorageError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	result := HandleStorageError("save", "opdash_theme", originalErr)

	assert.NotNil(t, result)
	assert.Contains(t, result.Error(), "save")
	assert.Contains(t, result.Error(), "database connection failed")
	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeStorage))
}

func TestHandleStorageError_Deadline(t *testing.T) {
	result := HandleStorageError("load", "opdash_theme", context.DeadlineExceeded)
	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeTimeout))
}

func TestHandleNoRowsError(t *testing.T) {
	tests := []struct {
		name      string
		inputErr  error
		wantFound bool
		wantErr   bool
	}{
		{name: "no rows is not found", inputErr: sql.ErrNoRows},
		{name: "nil is found", inputErr: nil, wantFound: true},
		{name: "other error passes through", inputErr: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := HandleNoRowsError(tt.inputErr)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecuteInTx_RollsBackOnError(t *testing.T) {
	gw := setupTestDB(t)
	ctx := context.Background()

	err := ExecuteInTx(ctx, gw.db, "opdash_theme", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv_store (key, value) VALUES ('opdash_theme', 'dark')`); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	_, found, err := gw.Load(ctx, "opdash_theme")
	require.NoError(t, err)
	assert.False(t, found)
}
