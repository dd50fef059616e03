package storee

import (
	"context"
	"time"
)

// Status is the lifecycle state of an interview session.
// Progression is monotonic: active sessions may become completed (after a
// memory is materialized from them) or abandoned (administrative action).
// No transition leaves completed or abandoned.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Session represents one interview conversation, owned by exactly one user.
type Session struct {
	ID    string
	Owner string

	Status Status

	// Turns is the append-only conversation log. It is never empty after a
	// successful Start.
	Turns []Turn

	// CurrentQuestion caches the text of the last assistant turn so callers
	// can display it without re-scanning Turns.
	CurrentQuestion string

	// InitialContext is the optional topic the subject asked to talk about.
	InitialContext string

	// Summary is set exactly once, when the interview is ended.
	Summary string

	CreatedAt     time.Time
	LastUpdatedAt time.Time
	EndedAt       time.Time
}

// Active reports whether the session can still accept turns.
func (s Session) Active() bool { return s.Status == StatusActive }

// Ended reports whether the interview conversation has been ended,
// regardless of whether the session has been materialized into a memory.
// A session with a summary is ended even while its status is still active.
func (s Session) Ended() bool { return s.Status != StatusActive || s.Summary != "" }

// SubjectTurns returns the subject-authored turns in order.
func (s Session) SubjectTurns() []Turn {
	var out []Turn
	for _, t := range s.Turns {
		if t.Speaker == SpeakerSubject {
			out = append(out, t)
		}
	}
	return out
}

// SessionUpdate is a partial update applied to a stored session. Nil fields
// are left unchanged.
type SessionUpdate struct {
	Turns           []Turn
	CurrentQuestion *string
	Summary         *string
	Status          *Status
	EndedAt         *time.Time
	LastUpdatedAt   *time.Time
}

// SessionStore persists interview sessions. Every operation is scoped to an
// owner: a session id that exists but belongs to a different owner behaves
// exactly like an absent one (ErrNotFound), so existence never leaks.
//
// The store is responsible for whatever locking is needed when two updates
// race on the same session; last writer wins.
type SessionStore interface {
	CreateSession(ctx context.Context, session Session) error
	Session(ctx context.Context, id, owner string) (Session, error)
	UpdateSession(ctx context.Context, id, owner string, update SessionUpdate) (Session, error)
	Sessions(ctx context.Context, owner string) ([]Session, error)
	DeleteSession(ctx context.Context, id, owner string) error
}
