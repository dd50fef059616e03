package mock

import (
	"context"
	"io"
	"time"

	"github.com/storee/storee"
)

// Interface compliance checks.
var (
	_ storee.BlobStore   = (*BlobStore)(nil)
	_ storee.Transcriber = (*Transcriber)(nil)
	_ storee.Embedder    = (*Embedder)(nil)
	_ storee.MemoryIndex = (*MemoryIndex)(nil)
)

// BlobStore is a test double for storee.BlobStore.
// Set the function fields for the methods you need.
type BlobStore struct {
	PutFn       func(ctx context.Context, key string, r io.Reader) error
	GetFn       func(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFn    func(ctx context.Context, key string) error
	ListFn      func(ctx context.Context, prefix, pattern string) ([]string, error)
	SignedURLFn func(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Put delegates to PutFn.
func (b *BlobStore) Put(ctx context.Context, key string, r io.Reader) error {
	return b.PutFn(ctx, key, r)
}

// Get delegates to GetFn.
func (b *BlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return b.GetFn(ctx, key)
}

// Delete delegates to DeleteFn.
func (b *BlobStore) Delete(ctx context.Context, key string) error {
	return b.DeleteFn(ctx, key)
}

// List delegates to ListFn.
func (b *BlobStore) List(ctx context.Context, prefix, pattern string) ([]string, error) {
	return b.ListFn(ctx, prefix, pattern)
}

// SignedURL delegates to SignedURLFn.
func (b *BlobStore) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return b.SignedURLFn(ctx, key, expiry)
}

// Transcriber is a test double for storee.Transcriber.
type Transcriber struct {
	TranscribeFn func(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Transcribe delegates to TranscribeFn.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return t.TranscribeFn(ctx, audio, filename)
}

// Embedder is a test double for storee.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

// Embed delegates to EmbedFn.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

// MemoryIndex is a test double for storee.MemoryIndex.
// IndexFn and RemoveFn are nil-safe (no-op) because most tests only care
// about Search behavior.
type MemoryIndex struct {
	IndexFn  func(ctx context.Context, memory storee.Memory) error
	RemoveFn func(ctx context.Context, id, owner string) error
	SearchFn func(ctx context.Context, owner, query string, k int) ([]storee.SearchResult, error)
}

// Index delegates to IndexFn. No-op when IndexFn is nil.
func (m *MemoryIndex) Index(ctx context.Context, memory storee.Memory) error {
	if m.IndexFn == nil {
		return nil
	}
	return m.IndexFn(ctx, memory)
}

// Remove delegates to RemoveFn. No-op when RemoveFn is nil.
func (m *MemoryIndex) Remove(ctx context.Context, id, owner string) error {
	if m.RemoveFn == nil {
		return nil
	}
	return m.RemoveFn(ctx, id, owner)
}

// Search delegates to SearchFn.
func (m *MemoryIndex) Search(ctx context.Context, owner, query string, k int) ([]storee.SearchResult, error) {
	return m.SearchFn(ctx, owner, query, k)
}
