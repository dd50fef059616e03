package storee

import "context"

// Embedder maps text to a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SearchResult is a memory matched by a semantic query.
type SearchResult struct {
	Memory Memory
	Score  float32 // similarity in [0, 1], higher is closer
}

// MemoryIndex is a semantic index over memory records. Indexing is
// best-effort: a memory that fails to index is still fully usable through
// MemoryStore.
type MemoryIndex interface {
	Index(ctx context.Context, memory Memory) error
	Remove(ctx context.Context, id, owner string) error
	Search(ctx context.Context, owner, query string, k int) ([]SearchResult, error)
}
