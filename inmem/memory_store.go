package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.MemoryStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory [storee.MemoryStore].
type MemoryStore struct {
	mu       sync.RWMutex
	memories map[string]storee.Memory
}

// NewMemoryStore creates an empty in-memory memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{memories: make(map[string]storee.Memory)}
}

func (s *MemoryStore) CreateMemory(_ context.Context, memory storee.Memory) error {
	if memory.ID == "" || memory.Owner == "" {
		return fmt.Errorf("memory id and owner are required: %w", storee.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memories[memory.ID]; ok {
		return fmt.Errorf("memory %s already exists: %w", memory.ID, storee.ErrValidation)
	}
	s.memories[memory.ID] = cloneMemory(memory)
	return nil
}

func (s *MemoryStore) Memory(_ context.Context, id, owner string) (storee.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	memory, ok := s.memories[id]
	if !ok || memory.Owner != owner {
		return storee.Memory{}, notFound("memory", id)
	}
	return cloneMemory(memory), nil
}

func (s *MemoryStore) Memories(_ context.Context, owner string) ([]storee.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storee.Memory
	for _, memory := range s.memories {
		if memory.Owner == owner {
			out = append(out, cloneMemory(memory))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *MemoryStore) UpdateMemory(_ context.Context, memory storee.Memory) (storee.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.memories[memory.ID]
	if !ok || existing.Owner != memory.Owner {
		return storee.Memory{}, notFound("memory", memory.ID)
	}
	memory.CreatedAt = existing.CreatedAt
	s.memories[memory.ID] = cloneMemory(memory)
	return cloneMemory(memory), nil
}

func (s *MemoryStore) DeleteMemory(_ context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	memory, ok := s.memories[id]
	if !ok || memory.Owner != owner {
		return notFound("memory", id)
	}
	delete(s.memories, id)
	return nil
}

func cloneMemory(m storee.Memory) storee.Memory {
	m.Attachments = append([]storee.MediaAttachment(nil), m.Attachments...)
	return m
}
