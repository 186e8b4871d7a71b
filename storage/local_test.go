package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundtrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := NewBlobKey("notes.txt")
	require.NoError(t, store.Put(ctx, key, strings.NewReader("hello blob")))

	r, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello blob", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.Error(t, err)
}

func TestLocalStoreGetMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "no-such-key")
	assert.Error(t, err)
}

func TestLocalStoreIgnoresPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	// keys are flattened to their base name, never treated as paths
	require.NoError(t, store.Put(ctx, "../escape.txt", strings.NewReader("x")))

	r, err := store.Get(ctx, "escape.txt")
	require.NoError(t, err)
	r.Close()
}

func TestNewBlobKey(t *testing.T) {
	a := NewBlobKey("report.pdf")
	b := NewBlobKey("report.pdf")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.False(t, strings.HasSuffix(NewBlobKey("noext"), "."))
}
