package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/storee/storee"
	storeejson "github.com/storee/storee/json"
)

// Interface compliance check.
var _ storee.MemoryStore = (*MemoryStore)(nil)

// MemoryStore is a Redis-backed [storee.MemoryStore].
type MemoryStore struct {
	rdb *redis.Client
}

// NewMemoryStore creates a memory store on the given Redis client.
func NewMemoryStore(rdb *redis.Client) *MemoryStore {
	return &MemoryStore{rdb: rdb}
}

func (s *MemoryStore) CreateMemory(ctx context.Context, memory storee.Memory) error {
	if memory.ID == "" || memory.Owner == "" {
		return fmt.Errorf("memory id and owner are required: %w", storee.ErrValidation)
	}
	data, err := storeejson.MarshalMemory(memory)
	if err != nil {
		return fmt.Errorf("marshal memory: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, memoryKey(memory.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("create memory: %w", err)
	}
	if !ok {
		return fmt.Errorf("memory %s already exists: %w", memory.ID, storee.ErrValidation)
	}
	if err := s.rdb.SAdd(ctx, ownerMemoriesKey(memory.Owner), memory.ID).Err(); err != nil {
		return fmt.Errorf("index memory: %w", err)
	}
	return nil
}

func (s *MemoryStore) Memory(ctx context.Context, id, owner string) (storee.Memory, error) {
	return s.load(ctx, id, owner)
}

func (s *MemoryStore) Memories(ctx context.Context, owner string) ([]storee.Memory, error) {
	ids, err := s.rdb.SMembers(ctx, ownerMemoriesKey(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	var out []storee.Memory
	for _, id := range ids {
		memory, err := s.load(ctx, id, owner)
		if errors.Is(err, storee.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, memory)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *MemoryStore) UpdateMemory(ctx context.Context, memory storee.Memory) (storee.Memory, error) {
	existing, err := s.load(ctx, memory.ID, memory.Owner)
	if err != nil {
		return storee.Memory{}, err
	}
	memory.CreatedAt = existing.CreatedAt

	data, err := storeejson.MarshalMemory(memory)
	if err != nil {
		return storee.Memory{}, fmt.Errorf("marshal memory: %w", err)
	}
	if err := s.rdb.Set(ctx, memoryKey(memory.ID), data, 0).Err(); err != nil {
		return storee.Memory{}, fmt.Errorf("update memory: %w", err)
	}
	return memory, nil
}

func (s *MemoryStore) DeleteMemory(ctx context.Context, id, owner string) error {
	if _, err := s.load(ctx, id, owner); err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, memoryKey(id))
	pipe.SRem(ctx, ownerMemoriesKey(owner), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	return nil
}

func (s *MemoryStore) load(ctx context.Context, id, owner string) (storee.Memory, error) {
	data, err := s.rdb.Get(ctx, memoryKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return storee.Memory{}, notFound("memory", id)
	}
	if err != nil {
		return storee.Memory{}, fmt.Errorf("get memory: %w", err)
	}
	memory, err := storeejson.UnmarshalMemory(data)
	if err != nil {
		return storee.Memory{}, fmt.Errorf("decode memory: %w", err)
	}
	if memory.Owner != owner {
		return storee.Memory{}, notFound("memory", id)
	}
	return memory, nil
}
