package storee

import (
	"context"
	"time"
)

// Story is a longer narrative assembled from one or more memories, edited
// and shared by its owner.
type Story struct {
	ID      string
	Owner   string
	Title   string
	Content string

	// Date is when the events of the story took place, at day granularity.
	Date time.Time

	CreatedAt time.Time
}

// StoryStore persists stories, owner scoped like the other stores: an id
// that belongs to a different owner behaves exactly like an absent one.
type StoryStore interface {
	CreateStory(ctx context.Context, story Story) error
	Story(ctx context.Context, id, owner string) (Story, error)
	Stories(ctx context.Context, owner string) ([]Story, error)
	UpdateStory(ctx context.Context, story Story) (Story, error)
	DeleteStory(ctx context.Context, id, owner string) error
}
