package inmem_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storee/storee"
	"github.com/storee/storee/inmem"
)

func newSession(id, owner string, createdAt time.Time) storee.Session {
	return storee.Session{
		ID:        id,
		Owner:     owner,
		Status:    storee.StatusActive,
		Turns:     []storee.Turn{{Speaker: storee.SpeakerAssistant, Text: "q1", At: createdAt}},
		CreatedAt: createdAt,
	}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := inmem.NewSessionStore()
	ctx := context.Background()
	created := newSession("s1", "u1", time.Now())

	require.NoError(t, store.CreateSession(ctx, created))

	got, err := store.Session(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSessionStore_OwnerMismatchIsNotFound(t *testing.T) {
	t.Parallel()

	store := inmem.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, newSession("s1", "u1", time.Now())))

	_, err := store.Session(ctx, "s1", "u2")
	assert.ErrorIs(t, err, storee.ErrNotFound)

	_, err = store.UpdateSession(ctx, "s1", "u2", storee.SessionUpdate{})
	assert.ErrorIs(t, err, storee.ErrNotFound)

	err = store.DeleteSession(ctx, "s1", "u2")
	assert.ErrorIs(t, err, storee.ErrNotFound)
}

func TestSessionStore_DuplicateCreate(t *testing.T) {
	t.Parallel()

	store := inmem.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, newSession("s1", "u1", time.Now())))

	err := store.CreateSession(ctx, newSession("s1", "u1", time.Now()))
	assert.ErrorIs(t, err, storee.ErrValidation)
}

func TestSessionStore_UpdatePartial(t *testing.T) {
	t.Parallel()

	store := inmem.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, newSession("s1", "u1", time.Now())))

	summary := "I got married in June 2010."
	updated, err := store.UpdateSession(ctx, "s1", "u1", storee.SessionUpdate{Summary: &summary})
	require.NoError(t, err)

	assert.Equal(t, summary, updated.Summary)
	assert.Equal(t, storee.StatusActive, updated.Status, "unset fields must not change")
	assert.Len(t, updated.Turns, 1)
}

func TestSessionStore_UpdateReplacesTurns(t *testing.T) {
	t.Parallel()

	store := inmem.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, newSession("s1", "u1", time.Now())))

	turns := []storee.Turn{
		{Speaker: storee.SpeakerAssistant, Text: "q1"},
		{Speaker: storee.SpeakerSubject, Text: "a1"},
	}
	updated, err := store.UpdateSession(ctx, "s1", "u1", storee.SessionUpdate{Turns: turns})
	require.NoError(t, err)
	assert.Len(t, updated.Turns, 2)

	// The stored copy must not alias the caller's slice.
	turns[0].Text = "mutated"
	got, err := store.Session(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "q1", got.Turns[0].Text)
}

func TestSessionStore_SessionsScopedAndOrdered(t *testing.T) {
	t.Parallel()

	store := inmem.NewSessionStore()
	ctx := context.Background()
	base := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateSession(ctx, newSession("s1", "u1", base)))
	require.NoError(t, store.CreateSession(ctx, newSession("s2", "u1", base.Add(time.Hour))))
	require.NoError(t, store.CreateSession(ctx, newSession("s3", "u2", base)))

	sessions, err := store.Sessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID, "newest first")
	assert.Equal(t, "s1", sessions[1].ID)
}

func TestSessionStore_Delete(t *testing.T) {
	t.Parallel()

	store := inmem.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, newSession("s1", "u1", time.Now())))

	require.NoError(t, store.DeleteSession(ctx, "s1", "u1"))

	_, err := store.Session(ctx, "s1", "u1")
	assert.ErrorIs(t, err, storee.ErrNotFound)
}
