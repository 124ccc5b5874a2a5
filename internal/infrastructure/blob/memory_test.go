package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "k", []byte("v1")))

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)

	require.NoError(t, store.Put(ctx, "k", []byte("v2")))
	data, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.ErrorIs(t, store.Delete(ctx, "k"), ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Put(ctx, "k", []byte("original")))

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	data[0] = 'X'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
