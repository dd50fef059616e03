package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.MediaStore = (*MediaStore)(nil)

// MediaStore is an in-memory [storee.MediaStore].
type MediaStore struct {
	mu          sync.RWMutex
	attachments map[string]storee.MediaAttachment
}

// NewMediaStore creates an empty in-memory media store.
func NewMediaStore() *MediaStore {
	return &MediaStore{attachments: make(map[string]storee.MediaAttachment)}
}

func (s *MediaStore) CreateAttachment(_ context.Context, att storee.MediaAttachment) error {
	if att.ID == "" || att.Owner == "" {
		return fmt.Errorf("attachment id and owner are required: %w", storee.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attachments[att.ID]; ok {
		return fmt.Errorf("attachment %s already exists: %w", att.ID, storee.ErrValidation)
	}
	s.attachments[att.ID] = att
	return nil
}

func (s *MediaStore) Attachment(_ context.Context, id, owner string) (storee.MediaAttachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	att, ok := s.attachments[id]
	if !ok || att.Owner != owner {
		return storee.MediaAttachment{}, notFound("attachment", id)
	}
	return att, nil
}

func (s *MediaStore) MemoryAttachments(_ context.Context, memoryID, owner string) ([]storee.MediaAttachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storee.MediaAttachment
	for _, att := range s.attachments {
		if att.MemoryID == memoryID && att.Owner == owner {
			out = append(out, att)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MediaStore) DeleteAttachment(_ context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	att, ok := s.attachments[id]
	if !ok || att.Owner != owner {
		return notFound("attachment", id)
	}
	delete(s.attachments, id)
	return nil
}
