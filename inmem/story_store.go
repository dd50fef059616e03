package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.StoryStore = (*StoryStore)(nil)

// StoryStore is an in-memory [storee.StoryStore].
type StoryStore struct {
	mu      sync.RWMutex
	stories map[string]storee.Story
}

// NewStoryStore creates an empty in-memory story store.
func NewStoryStore() *StoryStore {
	return &StoryStore{stories: make(map[string]storee.Story)}
}

func (s *StoryStore) CreateStory(_ context.Context, story storee.Story) error {
	if story.ID == "" || story.Owner == "" {
		return fmt.Errorf("story id and owner are required: %w", storee.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stories[story.ID]; ok {
		return fmt.Errorf("story %s already exists: %w", story.ID, storee.ErrValidation)
	}
	s.stories[story.ID] = story
	return nil
}

func (s *StoryStore) Story(_ context.Context, id, owner string) (storee.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	story, ok := s.stories[id]
	if !ok || story.Owner != owner {
		return storee.Story{}, notFound("story", id)
	}
	return story, nil
}

func (s *StoryStore) Stories(_ context.Context, owner string) ([]storee.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storee.Story
	for _, story := range s.stories {
		if story.Owner == owner {
			out = append(out, story)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *StoryStore) UpdateStory(_ context.Context, story storee.Story) (storee.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.stories[story.ID]
	if !ok || existing.Owner != story.Owner {
		return storee.Story{}, notFound("story", story.ID)
	}
	story.CreatedAt = existing.CreatedAt
	s.stories[story.ID] = story
	return story, nil
}

func (s *StoryStore) DeleteStory(_ context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	story, ok := s.stories[id]
	if !ok || story.Owner != owner {
		return notFound("story", id)
	}
	delete(s.stories, id)
	return nil
}
