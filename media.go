package storee

import (
	"context"
	"io"
	"time"
)

// MediaAttachment links an uploaded file to a memory.
type MediaAttachment struct {
	ID        string
	MemoryID  string
	Owner     string
	MediaType string // "image" or "audio"
	Label     string
	Key       string // blob store key, "{owner}/{uuid}{ext}"
	CreatedAt time.Time
}

// MediaStore persists attachment records, owner scoped.
type MediaStore interface {
	CreateAttachment(ctx context.Context, att MediaAttachment) error
	Attachment(ctx context.Context, id, owner string) (MediaAttachment, error)
	MemoryAttachments(ctx context.Context, memoryID, owner string) ([]MediaAttachment, error)
	DeleteAttachment(ctx context.Context, id, owner string) error
}

// BlobStore stores raw media bytes under opaque keys and hands out
// time-limited URLs for direct access.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// List returns the keys under prefix matching pattern, which may use
	// glob syntax including **.
	List(ctx context.Context, prefix, pattern string) ([]string, error)
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
