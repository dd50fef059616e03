// Package chromem implements [storee.MemoryIndex] on chromem-go, a pure Go
// embedded vector database. Each owner gets a separate collection so queries
// can never cross user boundaries.
package chromem

import (
	"context"
	"fmt"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"
	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.MemoryIndex = (*Index)(nil)

// Index is an embedded semantic index over memory records.
type Index struct {
	db       *chromem.DB
	embedder storee.Embedder

	mu          sync.Mutex
	collections map[string]*chromem.Collection
}

// New creates an index that embeds documents and queries with embedder.
func New(embedder storee.Embedder) *Index {
	return &Index{
		db:          chromem.NewDB(),
		embedder:    embedder,
		collections: make(map[string]*chromem.Collection),
	}
}

func (x *Index) collection(owner string) (*chromem.Collection, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if col, ok := x.collections[owner]; ok {
		return col, nil
	}
	embed := func(ctx context.Context, text string) ([]float32, error) {
		return x.embedder.Embed(ctx, text)
	}
	col, err := x.db.GetOrCreateCollection("owner_"+owner, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("chromem: create collection: %w", err)
	}
	x.collections[owner] = col
	return col, nil
}

// Index adds or replaces the memory's document in its owner's collection.
func (x *Index) Index(ctx context.Context, memory storee.Memory) error {
	col, err := x.collection(memory.Owner)
	if err != nil {
		return err
	}
	doc := chromem.Document{
		ID:      memory.ID,
		Content: memory.Title + "\n" + memory.Content,
		Metadata: map[string]string{
			"owner":      memory.Owner,
			"title":      memory.Title,
			"date":       memory.Date.Format(time.RFC3339),
			"created_at": memory.CreatedAt.Format(time.RFC3339),
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("chromem: add document: %w", err)
	}
	return nil
}

// Remove deletes the memory's document from its owner's collection.
func (x *Index) Remove(ctx context.Context, id, owner string) error {
	col, err := x.collection(owner)
	if err != nil {
		return err
	}
	if err := col.Delete(ctx, nil, nil, id); err != nil {
		return fmt.Errorf("chromem: delete document: %w", err)
	}
	return nil
}

// Search returns up to k memories of owner most similar to query, best first.
func (x *Index) Search(ctx context.Context, owner, query string, k int) ([]storee.SearchResult, error) {
	col, err := x.collection(owner)
	if err != nil {
		return nil, err
	}

	// chromem rejects nResults larger than the collection.
	if n := col.Count(); k > n {
		k = n
	}
	if k < 1 {
		return nil, nil
	}

	results, err := col.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: query: %w", err)
	}

	out := make([]storee.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, storee.SearchResult{
			Memory: resultMemory(r, owner),
			Score:  r.Similarity,
		})
	}
	return out, nil
}

// resultMemory rebuilds a Memory from the indexed document. The index is not
// the source of truth; callers wanting attachments or exact timestamps load
// the full record from the memory store.
func resultMemory(r chromem.Result, owner string) storee.Memory {
	m := storee.Memory{
		ID:    r.ID,
		Owner: owner,
		Title: r.Metadata["title"],
	}
	if title := r.Metadata["title"]; len(r.Content) > len(title)+1 {
		m.Content = r.Content[len(title)+1:]
	}
	if t, err := time.Parse(time.RFC3339, r.Metadata["date"]); err == nil {
		m.Date = t
	}
	if t, err := time.Parse(time.RFC3339, r.Metadata["created_at"]); err == nil {
		m.CreatedAt = t
	}
	return m
}
