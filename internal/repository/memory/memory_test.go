package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/repository"
)

var _ repository.KeyValueStore = (*Store)(nil)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, found, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "theme", "light"))
	value, found, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", value)

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	value, _, _ = store.Get(ctx, "theme")
	assert.Equal(t, "dark", value, "last write wins")

	require.NoError(t, store.Delete(ctx, "theme"))
	require.NoError(t, store.Delete(ctx, "theme"), "deleting twice is fine")
	_, found, _ = store.Get(ctx, "theme")
	assert.False(t, found)
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Set(ctx, "a", "1"))

	keys, err := store.Keys(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestStore_InjectedFailures(t *testing.T) {
	ctx := context.Background()
	store := New()
	boom := errors.New("quota exceeded")

	store.FailWrites = boom
	assert.ErrorIs(t, store.Set(ctx, "k", "v"), boom)
	assert.ErrorIs(t, store.Delete(ctx, "k"), boom)

	store.FailReads = boom
	_, _, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Set(ctx, "k", "v")

	assert.ErrorIs(t, err, context.Canceled)
}
