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
var _ storee.StoryStore = (*StoryStore)(nil)

// StoryStore is a Redis-backed [storee.StoryStore].
type StoryStore struct {
	rdb *redis.Client
}

// NewStoryStore creates a story store on the given Redis client.
func NewStoryStore(rdb *redis.Client) *StoryStore {
	return &StoryStore{rdb: rdb}
}

func (s *StoryStore) CreateStory(ctx context.Context, story storee.Story) error {
	if story.ID == "" || story.Owner == "" {
		return fmt.Errorf("story id and owner are required: %w", storee.ErrValidation)
	}
	data, err := storeejson.MarshalStory(story)
	if err != nil {
		return fmt.Errorf("marshal story: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, storyKey(story.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	if !ok {
		return fmt.Errorf("story %s already exists: %w", story.ID, storee.ErrValidation)
	}
	if err := s.rdb.SAdd(ctx, ownerStoriesKey(story.Owner), story.ID).Err(); err != nil {
		return fmt.Errorf("index story: %w", err)
	}
	return nil
}

func (s *StoryStore) Story(ctx context.Context, id, owner string) (storee.Story, error) {
	return s.load(ctx, id, owner)
}

func (s *StoryStore) Stories(ctx context.Context, owner string) ([]storee.Story, error) {
	ids, err := s.rdb.SMembers(ctx, ownerStoriesKey(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	var out []storee.Story
	for _, id := range ids {
		story, err := s.load(ctx, id, owner)
		if errors.Is(err, storee.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, story)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *StoryStore) UpdateStory(ctx context.Context, story storee.Story) (storee.Story, error) {
	existing, err := s.load(ctx, story.ID, story.Owner)
	if err != nil {
		return storee.Story{}, err
	}
	story.CreatedAt = existing.CreatedAt

	data, err := storeejson.MarshalStory(story)
	if err != nil {
		return storee.Story{}, fmt.Errorf("marshal story: %w", err)
	}
	if err := s.rdb.Set(ctx, storyKey(story.ID), data, 0).Err(); err != nil {
		return storee.Story{}, fmt.Errorf("update story: %w", err)
	}
	return story, nil
}

func (s *StoryStore) DeleteStory(ctx context.Context, id, owner string) error {
	if _, err := s.load(ctx, id, owner); err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, storyKey(id))
	pipe.SRem(ctx, ownerStoriesKey(owner), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

func (s *StoryStore) load(ctx context.Context, id, owner string) (storee.Story, error) {
	data, err := s.rdb.Get(ctx, storyKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return storee.Story{}, notFound("story", id)
	}
	if err != nil {
		return storee.Story{}, fmt.Errorf("get story: %w", err)
	}
	story, err := storeejson.UnmarshalStory(data)
	if err != nil {
		return storee.Story{}, fmt.Errorf("decode story: %w", err)
	}
	if story.Owner != owner {
		return storee.Story{}, notFound("story", id)
	}
	return story, nil
}
