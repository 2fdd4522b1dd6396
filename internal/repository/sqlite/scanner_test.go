package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []string
	err    error
}

func (r *fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		*(d.(*string)) = r.values[i]
	}
	return nil
}

func TestScanValue(t *testing.T) {
	value, err := ScanValue(&fakeRow{values: []string{"[]"}})
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	_, err = ScanValue(&fakeRow{err: errors.New("boom")})
	assert.Error(t, err)
}
