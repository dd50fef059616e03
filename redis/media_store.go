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
var _ storee.MediaStore = (*MediaStore)(nil)

// MediaStore is a Redis-backed [storee.MediaStore]. Attachment records are
// keyed by id with a per-memory set index for listing.
type MediaStore struct {
	rdb *redis.Client
}

// NewMediaStore creates a media store on the given Redis client.
func NewMediaStore(rdb *redis.Client) *MediaStore {
	return &MediaStore{rdb: rdb}
}

func (s *MediaStore) CreateAttachment(ctx context.Context, att storee.MediaAttachment) error {
	if att.ID == "" || att.Owner == "" || att.MemoryID == "" {
		return fmt.Errorf("attachment id, owner and memory id are required: %w", storee.ErrValidation)
	}
	data, err := storeejson.MarshalAttachment(att)
	if err != nil {
		return fmt.Errorf("marshal attachment: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, attachmentKey(att.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	if !ok {
		return fmt.Errorf("attachment %s already exists: %w", att.ID, storee.ErrValidation)
	}
	if err := s.rdb.SAdd(ctx, memoryAttachmentsKey(att.MemoryID), att.ID).Err(); err != nil {
		return fmt.Errorf("index attachment: %w", err)
	}
	return nil
}

func (s *MediaStore) Attachment(ctx context.Context, id, owner string) (storee.MediaAttachment, error) {
	return s.load(ctx, id, owner)
}

func (s *MediaStore) MemoryAttachments(ctx context.Context, memoryID, owner string) ([]storee.MediaAttachment, error) {
	ids, err := s.rdb.SMembers(ctx, memoryAttachmentsKey(memoryID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	var out []storee.MediaAttachment
	for _, id := range ids {
		att, err := s.load(ctx, id, owner)
		if errors.Is(err, storee.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, att)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MediaStore) DeleteAttachment(ctx context.Context, id, owner string) error {
	att, err := s.load(ctx, id, owner)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, attachmentKey(id))
	pipe.SRem(ctx, memoryAttachmentsKey(att.MemoryID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

func (s *MediaStore) load(ctx context.Context, id, owner string) (storee.MediaAttachment, error) {
	data, err := s.rdb.Get(ctx, attachmentKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return storee.MediaAttachment{}, notFound("attachment", id)
	}
	if err != nil {
		return storee.MediaAttachment{}, fmt.Errorf("get attachment: %w", err)
	}
	att, err := storeejson.UnmarshalAttachment(data)
	if err != nil {
		return storee.MediaAttachment{}, fmt.Errorf("decode attachment: %w", err)
	}
	if att.Owner != owner {
		return storee.MediaAttachment{}, notFound("attachment", id)
	}
	return att, nil
}
