package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaward/blobtree/pkg/blobstore"
)

func put(t *testing.T, s *Store, cont, key, body string) {
	t.Helper()
	err := s.Upload(context.Background(), cont, key, strings.NewReader(body), blobstore.UploadOptions{ContentType: "text/plain"})
	require.NoError(t, err)
}

func TestUploadAndRead(t *testing.T) {
	ctx := context.Background()
	s := New()
	put(t, s, "catalog", "a/b.txt", "hello")

	props, err := s.GetProperties(ctx, "catalog", "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), props.Size)
	assert.Equal(t, "text/plain", props.ContentType)
	assert.False(t, props.CreatedAt.IsZero())

	rc, err := s.OpenRead(ctx, "catalog", "a/b.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestGetPropertiesNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.EnsureContainer(ctx, "catalog", blobstore.PublicAccessNone))

	_, err := s.GetProperties(ctx, "catalog", "missing.txt")
	assert.True(t, blobstore.IsNotFound(err))

	_, err = s.GetProperties(ctx, "nope", "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrContainerNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	put(t, s, "catalog", "a.txt", "x")

	deleted, err := s.Delete(ctx, "catalog", "a.txt")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, "catalog", "a.txt")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	put(t, s, "catalog", "a/old.txt", "payload")
	require.NoError(t, s.EnsureContainer(ctx, "backup", blobstore.PublicAccessNone))

	require.NoError(t, s.Copy(ctx, "catalog", "a/old.txt", "backup", "a/new.txt"))

	props, err := s.GetProperties(ctx, "backup", "a/new.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(7), props.Size)

	err = s.Copy(ctx, "catalog", "gone.txt", "backup", "x.txt")
	assert.True(t, blobstore.IsNotFound(err))
}

func TestListFlatOrderAndPrefix(t *testing.T) {
	ctx := context.Background()
	s := New()
	put(t, s, "catalog", "b/2.txt", "2")
	put(t, s, "catalog", "a/1.txt", "1")
	put(t, s, "catalog", "a/3.txt", "3")

	var keys []string
	err := s.ListFlat(ctx, "catalog", "a/", func(it blobstore.Item) error {
		keys = append(keys, it.Key)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.txt", "a/3.txt"}, keys)
}

func TestListHierarchy(t *testing.T) {
	ctx := context.Background()
	s := New()
	put(t, s, "catalog", "images/logo.png", "p")
	put(t, s, "catalog", "images/thumbs/s.png", "p")
	put(t, s, "catalog", "images/thumbs/m.png", "p")
	put(t, s, "catalog", "readme.txt", "r")

	listing, err := s.ListHierarchy(ctx, "catalog", "images/", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"images/thumbs/"}, listing.Prefixes)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "images/logo.png", listing.Items[0].Key)

	root, err := s.ListHierarchy(ctx, "catalog", "", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"images/"}, root.Prefixes)
	require.Len(t, root.Items, 1)
	assert.Equal(t, "readme.txt", root.Items[0].Key)
}

func TestListContainers(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.EnsureContainer(ctx, "catalog", blobstore.PublicAccessBlob))
	require.NoError(t, s.EnsureContainer(ctx, "cms", blobstore.PublicAccessNone))
	require.NoError(t, s.EnsureContainer(ctx, "archive", blobstore.PublicAccessNone))

	all, err := s.ListContainers(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "archive", all[0].Name)

	filtered, err := s.ListContainers(ctx, "c")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "catalog", filtered[0].Name)
	assert.Equal(t, "cms", filtered[1].Name)

	access, ok := s.Access("catalog")
	require.True(t, ok)
	assert.Equal(t, blobstore.PublicAccessBlob, access)
}

func TestEnsureContainerIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.EnsureContainer(ctx, "catalog", blobstore.PublicAccessBlob))
	put(t, s, "catalog", "a.txt", "x")
	require.NoError(t, s.EnsureContainer(ctx, "catalog", blobstore.PublicAccessNone))

	// Re-ensuring must not wipe contents or change the original policy.
	assert.Equal(t, []string{"a.txt"}, s.Keys("catalog"))
	access, _ := s.Access("catalog")
	assert.Equal(t, blobstore.PublicAccessBlob, access)
}
