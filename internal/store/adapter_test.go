package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter, err := NewFileAdapter(t.TempDir())
	require.NoError(t, err)

	// A key that was never written yields nil, not an error.
	data, err := adapter.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, adapter.Save(ctx, "cart-storage", []byte(`{"version":1,"state":[]}`)))

	data, err = adapter.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"state":[]}`, string(data))

	require.NoError(t, adapter.Delete(ctx, "cart-storage"))
	data, err = adapter.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Deleting an absent key is a no-op.
	require.NoError(t, adapter.Delete(ctx, "cart-storage"))
}

func TestFileAdapter_CreatesBaseDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "state")
	_, err := NewFileAdapter(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileAdapter_SaveReplacesPreviousValue(t *testing.T) {
	ctx := context.Background()
	adapter, err := NewFileAdapter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, adapter.Save(ctx, "k", []byte("first")))
	require.NoError(t, adapter.Save(ctx, "k", []byte("second")))

	data, err := adapter.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestMemoryAdapter_IsolatesStoredBytes(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	src := []byte("hello")
	require.NoError(t, adapter.Save(ctx, "k", src))
	src[0] = 'X'

	data, err := adapter.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data), "adapter must not alias caller buffers")
}
