package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, CartKey, []byte(`[{"id":"l1"}]`)))

	data, err := store.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"l1"}]`, string(data))
}

func TestFileStoreGetMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), TokenKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, TokenKey, []byte("old")))
	require.NoError(t, store.Set(ctx, TokenKey, []byte("new")))

	data, err := store.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, CartKey, []byte("x")))
	require.NoError(t, store.Delete(ctx, CartKey))

	_, err = store.Get(ctx, CartKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, CartKey))
}

func TestMemoryStoreIsolatesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, store.Set(ctx, CartKey, original))
	original[0] = 'z'

	data, err := store.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}
