package mock

import (
	"context"

	"github.com/storee/storee"
)

// Interface compliance checks.
var (
	_ storee.SessionStore = (*SessionStore)(nil)
	_ storee.MemoryStore  = (*MemoryStore)(nil)
	_ storee.StoryStore   = (*StoryStore)(nil)
	_ storee.MediaStore   = (*MediaStore)(nil)
)

// SessionStore is a test double for storee.SessionStore.
// Set the function fields for the methods you need.
type SessionStore struct {
	CreateSessionFn func(ctx context.Context, session storee.Session) error
	SessionFn       func(ctx context.Context, id, owner string) (storee.Session, error)
	UpdateSessionFn func(ctx context.Context, id, owner string, update storee.SessionUpdate) (storee.Session, error)
	SessionsFn      func(ctx context.Context, owner string) ([]storee.Session, error)
	DeleteSessionFn func(ctx context.Context, id, owner string) error
}

// CreateSession delegates to CreateSessionFn.
func (s *SessionStore) CreateSession(ctx context.Context, session storee.Session) error {
	return s.CreateSessionFn(ctx, session)
}

// Session delegates to SessionFn.
func (s *SessionStore) Session(ctx context.Context, id, owner string) (storee.Session, error) {
	return s.SessionFn(ctx, id, owner)
}

// UpdateSession delegates to UpdateSessionFn.
func (s *SessionStore) UpdateSession(ctx context.Context, id, owner string, update storee.SessionUpdate) (storee.Session, error) {
	return s.UpdateSessionFn(ctx, id, owner, update)
}

// Sessions delegates to SessionsFn.
func (s *SessionStore) Sessions(ctx context.Context, owner string) ([]storee.Session, error) {
	return s.SessionsFn(ctx, owner)
}

// DeleteSession delegates to DeleteSessionFn.
func (s *SessionStore) DeleteSession(ctx context.Context, id, owner string) error {
	return s.DeleteSessionFn(ctx, id, owner)
}

// MemoryStore is a test double for storee.MemoryStore.
type MemoryStore struct {
	CreateMemoryFn func(ctx context.Context, memory storee.Memory) error
	MemoryFn       func(ctx context.Context, id, owner string) (storee.Memory, error)
	MemoriesFn     func(ctx context.Context, owner string) ([]storee.Memory, error)
	UpdateMemoryFn func(ctx context.Context, memory storee.Memory) (storee.Memory, error)
	DeleteMemoryFn func(ctx context.Context, id, owner string) error
}

// CreateMemory delegates to CreateMemoryFn.
func (s *MemoryStore) CreateMemory(ctx context.Context, memory storee.Memory) error {
	return s.CreateMemoryFn(ctx, memory)
}

// Memory delegates to MemoryFn.
func (s *MemoryStore) Memory(ctx context.Context, id, owner string) (storee.Memory, error) {
	return s.MemoryFn(ctx, id, owner)
}

// Memories delegates to MemoriesFn.
func (s *MemoryStore) Memories(ctx context.Context, owner string) ([]storee.Memory, error) {
	return s.MemoriesFn(ctx, owner)
}

// UpdateMemory delegates to UpdateMemoryFn.
func (s *MemoryStore) UpdateMemory(ctx context.Context, memory storee.Memory) (storee.Memory, error) {
	return s.UpdateMemoryFn(ctx, memory)
}

// DeleteMemory delegates to DeleteMemoryFn.
func (s *MemoryStore) DeleteMemory(ctx context.Context, id, owner string) error {
	return s.DeleteMemoryFn(ctx, id, owner)
}

// StoryStore is a test double for storee.StoryStore.
type StoryStore struct {
	CreateStoryFn func(ctx context.Context, story storee.Story) error
	StoryFn       func(ctx context.Context, id, owner string) (storee.Story, error)
	StoriesFn     func(ctx context.Context, owner string) ([]storee.Story, error)
	UpdateStoryFn func(ctx context.Context, story storee.Story) (storee.Story, error)
	DeleteStoryFn func(ctx context.Context, id, owner string) error
}

// CreateStory delegates to CreateStoryFn.
func (s *StoryStore) CreateStory(ctx context.Context, story storee.Story) error {
	return s.CreateStoryFn(ctx, story)
}

// Story delegates to StoryFn.
func (s *StoryStore) Story(ctx context.Context, id, owner string) (storee.Story, error) {
	return s.StoryFn(ctx, id, owner)
}

// Stories delegates to StoriesFn.
func (s *StoryStore) Stories(ctx context.Context, owner string) ([]storee.Story, error) {
	return s.StoriesFn(ctx, owner)
}

// UpdateStory delegates to UpdateStoryFn.
func (s *StoryStore) UpdateStory(ctx context.Context, story storee.Story) (storee.Story, error) {
	return s.UpdateStoryFn(ctx, story)
}

// DeleteStory delegates to DeleteStoryFn.
func (s *StoryStore) DeleteStory(ctx context.Context, id, owner string) error {
	return s.DeleteStoryFn(ctx, id, owner)
}

// MediaStore is a test double for storee.MediaStore.
type MediaStore struct {
	CreateAttachmentFn  func(ctx context.Context, att storee.MediaAttachment) error
	AttachmentFn        func(ctx context.Context, id, owner string) (storee.MediaAttachment, error)
	MemoryAttachmentsFn func(ctx context.Context, memoryID, owner string) ([]storee.MediaAttachment, error)
	DeleteAttachmentFn  func(ctx context.Context, id, owner string) error
}

// CreateAttachment delegates to CreateAttachmentFn.
func (s *MediaStore) CreateAttachment(ctx context.Context, att storee.MediaAttachment) error {
	return s.CreateAttachmentFn(ctx, att)
}

// Attachment delegates to AttachmentFn.
func (s *MediaStore) Attachment(ctx context.Context, id, owner string) (storee.MediaAttachment, error) {
	return s.AttachmentFn(ctx, id, owner)
}

// MemoryAttachments delegates to MemoryAttachmentsFn.
func (s *MediaStore) MemoryAttachments(ctx context.Context, memoryID, owner string) ([]storee.MediaAttachment, error) {
	return s.MemoryAttachmentsFn(ctx, memoryID, owner)
}

// DeleteAttachment delegates to DeleteAttachmentFn.
func (s *MediaStore) DeleteAttachment(ctx context.Context, id, owner string) error {
	return s.DeleteAttachmentFn(ctx, id, owner)
}
