package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmers(t *testing.T) {
	tests := []struct {
		name      string
		confirmer Confirmer
		expected  bool
	}{
		{name: "always", confirmer: AlwaysConfirm, expected: true},
		{name: "never", confirmer: NeverConfirm, expected: false},
		{name: "confirm if true", confirmer: ConfirmIf(true), expected: true},
		{name: "confirm if false", confirmer: ConfirmIf(false), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.confirmer.Confirm(context.Background(), PromptReset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestConfirmed_NilDeclines(t *testing.T) {
	ok, err := confirmed(context.Background(), nil, PromptClearHist)
	require.NoError(t, err)
	assert.False(t, ok)
}
