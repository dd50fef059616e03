package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storee/storee"
)

// Materializer converts an ended interview session into a durable memory
// record and commits the session's completed transition. It is the only
// component that moves a session out of the active status.
type Materializer struct {
	sessions storee.SessionStore
	memories storee.MemoryStore
	index    storee.MemoryIndex
	now      func() time.Time
	newID    func() string
}

// MaterializerOption configures a [Materializer].
type MaterializerOption func(*Materializer)

// WithIndex sets a semantic index that new memories are added to.
// Indexing is best-effort and never fails materialization.
func WithIndex(index storee.MemoryIndex) MaterializerOption {
	return func(m *Materializer) { m.index = index }
}

// WithMaterializerClock overrides the time source. Useful for testing.
func WithMaterializerClock(now func() time.Time) MaterializerOption {
	return func(m *Materializer) { m.now = now }
}

// NewMaterializer creates a Materializer over the given stores.
func NewMaterializer(sessions storee.SessionStore, memories storee.MemoryStore, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		sessions: sessions,
		memories: memories,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// MemoryDraft is the user-reviewed content of a memory about to be created
// from an interview session.
type MemoryDraft struct {
	SessionID string
	Title     string
	Content   string
	Date      storee.DateSpec
}

// CreateMemory creates a memory record from an ended session owned by owner
// and marks the session completed. The session must have been ended first;
// an unknown session id or one owned by someone else is ErrNotFound either
// way. A malformed date spec resolves to now rather than failing (see
// DateSpec.Resolve).
func (m *Materializer) CreateMemory(ctx context.Context, owner string, draft MemoryDraft) (storee.Memory, error) {
	if draft.Title == "" {
		return storee.Memory{}, fmt.Errorf("title is required: %w", storee.ErrValidation)
	}
	if draft.Content == "" {
		return storee.Memory{}, fmt.Errorf("content is required: %w", storee.ErrValidation)
	}

	session, err := m.sessions.Session(ctx, draft.SessionID, owner)
	if err != nil {
		return storee.Memory{}, fmt.Errorf("load session: %w", err)
	}
	if session.Status != storee.StatusActive {
		return storee.Memory{}, fmt.Errorf("session is %s: %w", session.Status, storee.ErrInvalidState)
	}
	if session.Summary == "" {
		return storee.Memory{}, fmt.Errorf("session has not been ended: %w", storee.ErrInvalidState)
	}

	now := m.now()
	memory := storee.Memory{
		ID:        m.newID(),
		Owner:     owner,
		Title:     draft.Title,
		Content:   draft.Content,
		Date:      draft.Date.Resolve(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.memories.CreateMemory(ctx, memory); err != nil {
		return storee.Memory{}, fmt.Errorf("create memory: %w", err)
	}

	completed := storee.StatusCompleted
	if _, err := m.sessions.UpdateSession(ctx, session.ID, owner, storee.SessionUpdate{Status: &completed}); err != nil {
		return storee.Memory{}, fmt.Errorf("complete session: %w", err)
	}

	if m.index != nil {
		// Best effort: search lags rather than blocking creation.
		_ = m.index.Index(ctx, memory)
	}

	return memory, nil
}
