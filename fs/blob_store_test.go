package fs_test

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storee/storee"
	"github.com/storee/storee/fs"
)

func newStore(t *testing.T, opts ...fs.Option) *fs.BlobStore {
	t.Helper()
	return fs.New(t.TempDir(), []byte("test-secret"), opts...)
}

func TestBlobStore_PutGet(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1/photo.jpg", strings.NewReader("jpeg-bytes")))

	rc, err := store.Get(ctx, "u1/photo.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestBlobStore_PutLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.New(dir, []byte("s"))
	require.NoError(t, store.Put(context.Background(), "u1/a.jpg", strings.NewReader("x")))

	entries, err := os.ReadDir(filepath.Join(dir, "u1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.jpg", entries[0].Name())
}

func TestBlobStore_GetMissing(t *testing.T) {
	t.Parallel()

	_, err := newStore(t).Get(context.Background(), "u1/nope.jpg")
	assert.ErrorIs(t, err, storee.ErrNotFound)
}

func TestBlobStore_RejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "/abs/path", "a/../../b"} {
		t.Run(key, func(t *testing.T) {
			err := store.Put(ctx, key, strings.NewReader("x"))
			assert.ErrorIs(t, err, storee.ErrValidation)
		})
	}
}

func TestBlobStore_Delete(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "u1/a.jpg", strings.NewReader("x")))

	require.NoError(t, store.Delete(ctx, "u1/a.jpg"))

	_, err := store.Get(ctx, "u1/a.jpg")
	assert.ErrorIs(t, err, storee.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "u1/a.jpg"), storee.ErrNotFound)
}

func TestBlobStore_List(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "u1/a.jpg", strings.NewReader("x")))
	require.NoError(t, store.Put(ctx, "u1/b.mp3", strings.NewReader("x")))
	require.NoError(t, store.Put(ctx, "u1/albums/c.jpg", strings.NewReader("x")))
	require.NoError(t, store.Put(ctx, "u2/d.jpg", strings.NewReader("x")))

	keys, err := store.List(ctx, "u1", "**/*.jpg")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1/a.jpg", "u1/albums/c.jpg"}, keys)

	keys, err = store.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, keys, 3, "empty pattern lists everything under the prefix")

	keys, err = store.List(ctx, "nobody", "**")
	require.NoError(t, err)
	assert.Empty(t, keys, "unknown prefix lists empty")
}

func TestBlobStore_SignedURL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	store := fs.New(t.TempDir(), []byte("test-secret"),
		fs.WithBaseURL("https://media.example.com/"),
		fs.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "u1/a.jpg", strings.NewReader("x")))

	signed, err := store.SignedURL(ctx, "u1/a.jpg", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "media.example.com", u.Host)
	assert.Equal(t, "/media/u1/a.jpg", u.Path)

	expires := u.Query().Get("expires")
	sig := u.Query().Get("sig")
	assert.True(t, store.VerifySignature("u1/a.jpg", expires, sig))

	// Tampering with the key invalidates the signature.
	assert.False(t, store.VerifySignature("u1/b.jpg", expires, sig))
}

func TestBlobStore_SignedURL_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := &now
	store := fs.New(t.TempDir(), []byte("test-secret"),
		fs.WithClock(func() time.Time { return *clock }),
	)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "u1/a.jpg", strings.NewReader("x")))

	signed, err := store.SignedURL(ctx, "u1/a.jpg", time.Hour)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	later := now.Add(2 * time.Hour)
	clock = &later
	assert.False(t, store.VerifySignature("u1/a.jpg", u.Query().Get("expires"), u.Query().Get("sig")))
}

func TestBlobStore_SignedURL_MissingBlob(t *testing.T) {
	t.Parallel()

	_, err := newStore(t).SignedURL(context.Background(), "u1/nope.jpg", time.Hour)
	assert.ErrorIs(t, err, storee.ErrNotFound)
}
