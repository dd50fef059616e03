package interview_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storee/storee"
	"github.com/storee/storee/interview"
	"github.com/storee/storee/mock"
)

func endedSession(id, owner string) storee.Session {
	return storee.Session{
		ID:      id,
		Owner:   owner,
		Status:  storee.StatusActive,
		Summary: "I got married in June 2010.",
		Turns: []storee.Turn{
			{Speaker: storee.SpeakerSubject, Text: "It was in June 2010"},
		},
		EndedAt: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestMaterializer_CreateMemory(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	var created storee.Memory
	var completedStatus *storee.Status
	sessions := &mock.SessionStore{
		SessionFn: func(_ context.Context, id, owner string) (storee.Session, error) {
			assert.Equal(t, "s1", id)
			assert.Equal(t, "u1", owner)
			return endedSession(id, owner), nil
		},
		UpdateSessionFn: func(_ context.Context, id, owner string, update storee.SessionUpdate) (storee.Session, error) {
			completedStatus = update.Status
			return endedSession(id, owner), nil
		},
	}
	memories := &mock.MemoryStore{
		CreateMemoryFn: func(_ context.Context, m storee.Memory) error {
			created = m
			return nil
		},
	}

	mat := interview.NewMaterializer(sessions, memories,
		interview.WithMaterializerClock(func() time.Time { return now }))

	memory, err := mat.CreateMemory(context.Background(), "u1", interview.MemoryDraft{
		SessionID: "s1",
		Title:     "Wedding Day",
		Content:   "I got married in June 2010.",
		Date:      storee.DateSpec{Value: "2010-06", Type: storee.DateMonth},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, memory.ID)
	assert.Equal(t, "u1", memory.Owner)
	assert.Equal(t, "Wedding Day", memory.Title)
	assert.Equal(t, time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC), memory.Date)
	assert.Equal(t, memory, created)
	require.NotNil(t, completedStatus, "the session must be marked completed")
	assert.Equal(t, storee.StatusCompleted, *completedStatus)
}

func TestMaterializer_CreateMemory_Validation(t *testing.T) {
	t.Parallel()

	mat := interview.NewMaterializer(&mock.SessionStore{}, &mock.MemoryStore{})

	_, err := mat.CreateMemory(context.Background(), "u1", interview.MemoryDraft{SessionID: "s1", Content: "body"})
	assert.ErrorIs(t, err, storee.ErrValidation)

	_, err = mat.CreateMemory(context.Background(), "u1", interview.MemoryDraft{SessionID: "s1", Title: "t"})
	assert.ErrorIs(t, err, storee.ErrValidation)
}

func TestMaterializer_CreateMemory_SessionNotFound(t *testing.T) {
	t.Parallel()

	sessions := &mock.SessionStore{
		SessionFn: func(context.Context, string, string) (storee.Session, error) {
			return storee.Session{}, fmt.Errorf("session: %w", storee.ErrNotFound)
		},
	}
	mat := interview.NewMaterializer(sessions, &mock.MemoryStore{})

	_, err := mat.CreateMemory(context.Background(), "u2", interview.MemoryDraft{
		SessionID: "s1", Title: "t", Content: "c",
	})
	assert.ErrorIs(t, err, storee.ErrNotFound)
}

func TestMaterializer_CreateMemory_NotEnded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session storee.Session
	}{
		{"active without summary", storee.Session{ID: "s1", Owner: "u1", Status: storee.StatusActive}},
		{"already completed", storee.Session{ID: "s1", Owner: "u1", Status: storee.StatusCompleted, Summary: "s"}},
		{"abandoned", storee.Session{ID: "s1", Owner: "u1", Status: storee.StatusAbandoned}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sessions := &mock.SessionStore{
				SessionFn: func(context.Context, string, string) (storee.Session, error) {
					return tt.session, nil
				},
			}
			mat := interview.NewMaterializer(sessions, &mock.MemoryStore{})

			_, err := mat.CreateMemory(context.Background(), "u1", interview.MemoryDraft{
				SessionID: "s1", Title: "t", Content: "c",
			})
			assert.ErrorIs(t, err, storee.ErrInvalidState)
		})
	}
}

func TestMaterializer_CreateMemory_IndexFailureIgnored(t *testing.T) {
	t.Parallel()

	sessions := &mock.SessionStore{
		SessionFn: func(_ context.Context, id, owner string) (storee.Session, error) {
			return endedSession(id, owner), nil
		},
		UpdateSessionFn: func(_ context.Context, id, owner string, _ storee.SessionUpdate) (storee.Session, error) {
			return endedSession(id, owner), nil
		},
	}
	memories := &mock.MemoryStore{
		CreateMemoryFn: func(context.Context, storee.Memory) error { return nil },
	}
	index := &mock.MemoryIndex{
		IndexFn: func(context.Context, storee.Memory) error { return errors.New("index down") },
	}

	mat := interview.NewMaterializer(sessions, memories, interview.WithIndex(index))

	_, err := mat.CreateMemory(context.Background(), "u1", interview.MemoryDraft{
		SessionID: "s1", Title: "t", Content: "c",
	})
	assert.NoError(t, err, "indexing is best-effort and must not fail creation")
}
