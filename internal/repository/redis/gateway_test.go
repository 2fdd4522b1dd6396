package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdash/internal/domain"
	"opdash/internal/repository"
)

func TestPrefixedKey(t *testing.T) {
	tests := []struct {
		prefix   string
		key      string
		expected string
	}{
		{"", repository.KeyActive, "opdash_tasks_v3"},
		{"team-a", repository.KeyActive, "team-a:opdash_tasks_v3"},
		{"team-a", repository.KeyTheme, "team-a:opdash_theme"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrefixedKey(tt.prefix, tt.key))
		})
	}
}

// The round trip below needs a live server; point OPDASH_TEST_REDIS_ADDR at one.
func TestGateway_RoundTrip(t *testing.T) {
	addr := os.Getenv("OPDASH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("OPDASH_TEST_REDIS_ADDR not set")
	}

	prefix := fmt.Sprintf("opdash-test-%d", time.Now().UnixNano())
	gw, err := Dial(addr, prefix)
	require.NoError(t, err)
	defer gw.Close()

	ctx := context.Background()
	repo := repository.NewStateRepository(gw, nil)

	active, history, err := repo.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedTasks(), active)

	require.NoError(t, repo.SaveCollections(ctx, []domain.Task{}, history, repository.CollectionBoth))

	active, _, err = repo.LoadState(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, found, err := gw.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}
