package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdash/internal/domain"
	"opdash/internal/errors"
	"opdash/internal/repository"
)

func setupTestDB(t *testing.T) *Gateway {
	gw, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })
	return gw
}

// storedKeys lists the keys in kv_store
func storedKeys(t *testing.T, gw *Gateway) []string {
	t.Helper()
	rows, err := gw.db.Query(`SELECT key FROM kv_store ORDER BY key ASC`)
	require.NoError(t, err)
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		require.NoError(t, rows.Scan(&key))
		keys = append(keys, key)
	}
	require.NoError(t, rows.Err())
	return keys
}

func TestLoad_Absent(t *testing.T) {
	gw := setupTestDB(t)

	value, found, err := gw.Load(context.Background(), repository.KeyActive)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestSaveAndLoad(t *testing.T) {
	gw := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, gw.Save(ctx, repository.Entry{Key: repository.KeyTheme, Value: "dark"}))

	value, found, err := gw.Load(ctx, repository.KeyTheme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)

	// Overwrite keeps a single row.
	require.NoError(t, gw.Save(ctx, repository.Entry{Key: repository.KeyTheme, Value: "light"}))
	value, _, err = gw.Load(ctx, repository.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	assert.Equal(t, []string{repository.KeyTheme}, storedKeys(t, gw))
}

func TestSave_MultipleEntries(t *testing.T) {
	gw := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, gw.Save(ctx,
		repository.Entry{Key: repository.KeyActive, Value: "[]"},
		repository.Entry{Key: repository.KeyHistory, Value: `[{"id":"h1"}]`},
	))

	assert.ElementsMatch(t, []string{repository.KeyActive, repository.KeyHistory}, storedKeys(t, gw))
}

func TestSave_CancelledContextWritesNothing(t *testing.T) {
	gw := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gw.Save(ctx, repository.Entry{Key: repository.KeyActive, Value: "[]"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))

	_, found, err := gw.Load(context.Background(), repository.KeyActive)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStateRepository_OnSQLite(t *testing.T) {
	gw := setupTestDB(t)
	repo := repository.NewStateRepository(gw, nil)
	ctx := context.Background()

	active, history, err := repo.LoadState(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 5)
	assert.Len(t, history, 2)

	require.NoError(t, repo.SaveCollections(ctx, []domain.Task{}, history, repository.CollectionBoth))

	active, history, err = repo.LoadState(ctx)
	require.NoError(t, err)
	assert.Empty(t, active, "an empty stored array must not reseed")
	assert.Equal(t, domain.SeedHistory(), history)
}

func TestNew_FileDatabasePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "opdash.db")
	ctx := context.Background()

	gw, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, gw.Save(ctx, repository.Entry{Key: repository.KeyTheme, Value: "dark"}))
	require.NoError(t, gw.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Load(ctx, repository.KeyTheme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)
}
