package sqlite

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockScanner struct {
	values []interface{}
	err    error
}

func (m *mockScanner) Scan(dest ...interface{}) error {
	if m.err != nil {
		return m.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = m.values[i].(string)
		}
	}
	return nil
}

type mockRows struct {
	rows []*mockScanner
	pos  int
	err  error
}

func (m *mockRows) Next() bool {
	if m.pos >= len(m.rows) {
		return false
	}
	m.pos++
	return true
}

func (m *mockRows) Scan(dest ...interface{}) error {
	return m.rows[m.pos-1].Scan(dest...)
}

func (m *mockRows) Err() error {
	return m.err
}

func TestScanEntry(t *testing.T) {
	entry, err := ScanEntry(&mockScanner{values: []interface{}{"k", "v", "2025-01-15T10:30:45.123Z"}})

	require.NoError(t, err)
	assert.Equal(t, "k", entry.Key)
	assert.Equal(t, "v", entry.Value)
	assert.True(t, time.Date(2025, 1, 15, 10, 30, 45, 123000000, time.UTC).Equal(entry.UpdatedAt))
}

func TestScanEntry_BadTimestamp(t *testing.T) {
	entry, err := ScanEntry(&mockScanner{values: []interface{}{"k", "v", "yesterday"}})

	require.NoError(t, err)
	assert.True(t, entry.UpdatedAt.IsZero())
}

func TestScanEntry_Error(t *testing.T) {
	_, err := ScanEntry(&mockScanner{err: stderrors.New("boom")})
	assert.EqualError(t, err, "boom")
}

func TestScanKeys(t *testing.T) {
	rows := &mockRows{rows: []*mockScanner{
		{values: []interface{}{"a"}},
		{values: []interface{}{"b"}},
	}}

	keys, err := ScanKeys(rows)

	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "a", *keys[0])
	assert.Equal(t, "b", *keys[1])
}

func TestScanKeys_RowsError(t *testing.T) {
	rows := &mockRows{err: stderrors.New("iteration failed")}

	_, err := ScanKeys(rows)
	assert.EqualError(t, err, "iteration failed")
}
