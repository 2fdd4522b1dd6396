package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdash/internal/config"
	"opdash/internal/domain"
)

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value    string
		expected Environment
	}{
		{value: "development", expected: Development},
		{value: "testing", expected: Testing},
		{value: "production", expected: Production},
		{value: "", expected: Production},
		{value: "staging", expected: Production},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("OPDASH_ENV", tt.value)
			assert.Equal(t, tt.expected, getEnvironment())
		})
	}
}

func TestGatewayFactory_TestingOpensSeededDashboard(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Display.Theme = config.ThemeDark

	dashboard, err := NewGatewayFactory(Testing).Open(context.Background(), cfg)
	require.NoError(t, err)
	defer dashboard.Close()

	assert.Equal(t, domain.SeedTasks(), dashboard.Active())
	assert.Equal(t, domain.ThemeDark, dashboard.Theme())
}

func TestGatewayFactory_ProductionUsesConfiguredPath(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage.Dir = t.TempDir()
	cfg.Storage.Filename = "dash.db"

	dashboard, err := NewGatewayFactory(Production).Open(context.Background(), cfg)
	require.NoError(t, err)

	_, err = dashboard.QuickAdd(context.Background(), "Persistida", "Diana Arteaga")
	require.NoError(t, err)
	require.NoError(t, dashboard.Close())

	reopened, err := NewGatewayFactory(Production).Open(context.Background(), cfg)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Len(t, reopened.Active(), 6)
}
