package assets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaward/blobtree/pkg/blobstore/memory"
	"github.com/seaward/blobtree/pkg/locator"
	"github.com/seaward/blobtree/pkg/policy"
)

func memoryWithObjects(t *testing.T, cont string, n int) *memory.Store {
	t.Helper()
	store := memory.New()
	for i := 0; i < n; i++ {
		upload(t, store, cont, fmt.Sprintf("src/%03d.txt", i), "x")
	}
	return store
}

func TestMove_RenameFile(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)
	upload(t, store, "c", "a/old.txt", "payload")

	require.NoError(t, p.Move(ctx, "c/a/old.txt", "c/a/renamed.txt"))

	assert.Equal(t, []string{"a/renamed.txt"}, store.Keys("c"))
	assert.False(t, p.Exists(ctx, "c/a/old.txt"))
	assert.True(t, p.Exists(ctx, "c/a/renamed.txt"))
}

func TestCopy_KeepsSource(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)
	upload(t, store, "c", "a/old.txt", "payload")

	require.NoError(t, p.Copy(ctx, "c/a/old.txt", "c/a/copy.txt"))

	assert.Equal(t, []string{"a/copy.txt", "a/old.txt"}, store.Keys("c"))
}

func TestMove_FolderSubtree(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)
	upload(t, store, "c", "old/a.txt", "1")
	upload(t, store, "c", "old/sub/b.txt", "2")
	upload(t, store, "c", "other/c.txt", "3")

	require.NoError(t, p.Move(ctx, "c/old/", "c/new/"))

	assert.Equal(t, []string{"new/a.txt", "new/sub/b.txt", "other/c.txt"}, store.Keys("c"))
}

func TestMove_CrossContainer(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)
	upload(t, store, "catalog", "151349/a.txt", "1")

	require.NoError(t, p.Move(ctx, "catalog/151349/", "archive/151349/"))

	assert.Empty(t, store.Keys("catalog"))
	assert.Equal(t, []string{"151349/a.txt"}, store.Keys("archive"))
}

func TestTransfer_NoOverwriteSkip(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)
	upload(t, store, "c", "a/old.txt", "source")
	upload(t, store, "c", "b/old.txt", "already here")

	require.NoError(t, p.Move(ctx, "c/a/", "c/b/"))

	// Destination existed: skipped, no overwrite, source left in place.
	rc, err := store.OpenRead(ctx, "c", "b/old.txt")
	require.NoError(t, err)
	defer rc.Close()
	buf := make([]byte, 32)
	n, _ := rc.Read(buf)
	assert.Equal(t, "already here", string(buf[:n]))
	assert.Contains(t, store.Keys("c"), "a/old.txt")
}

func TestTransfer_PolicyRejectsObject(t *testing.T) {
	ctx := context.Background()
	rules, err := policy.New([]string{"*.txt"}, nil)
	require.NoError(t, err)
	p, store := newTestProvider(t, WithPolicy(rules))
	upload(t, store, "c", "old/fine.txt", "1")
	upload(t, store, "c", "old/bad.exe", "2")

	err = p.Move(ctx, "c/old/", "c/new/")
	require.Error(t, err)
	assert.ErrorIs(t, err, policy.ErrExtensionNotAllowed)

	// The allowed object still moved; the rejected one stayed put.
	keys := store.Keys("c")
	assert.Contains(t, keys, "new/fine.txt")
	assert.Contains(t, keys, "old/bad.exe")
	assert.NotContains(t, keys, "old/fine.txt")
}

func TestTransfer_EmptySourceIsNoOp(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)
	upload(t, store, "c", "unrelated.txt", "1")

	require.NoError(t, p.Move(ctx, "c/ghost/", "c/new/"))
	assert.Equal(t, []string{"unrelated.txt"}, store.Keys("c"))
}

func TestTransfer_InvalidSource(t *testing.T) {
	p, _ := newTestProvider(t)
	err := p.Move(context.Background(), "c/", "d/x.txt")
	assert.ErrorIs(t, err, locator.ErrInvalidLocator)
}

func TestTransfer_Bounded(t *testing.T) {
	ctx := context.Background()
	store := memoryWithObjects(t, "c", 40)
	p, err := New(store, Config{
		BaseURL:               testBase,
		TransferConcurrency:   4,
		TransferRatePerSecond: 10000,
	})
	require.NoError(t, err)

	require.NoError(t, p.Copy(ctx, "c/src/", "c/dst/"))
	assert.Len(t, store.Keys("c"), 80)
}
