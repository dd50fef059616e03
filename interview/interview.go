// Package interview drives the question/answer loop of a memory-capture
// interview. The Engine is a pure state-transition function over Session
// values: it holds no state beyond its Gateway, performs no persistence, and
// makes at most one gateway call per operation, so callers own retry and
// storage policy.
package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storee/storee"
)

const (
	// openingQuestion is the fixed first question of every interview.
	// Emitting it locally keeps Start cheap and independent of gateway
	// availability.
	openingQuestion = "I'd love to help you capture your memories! Let's start with something that's meaningful to you. What's a memory or experience you'd like to share today?"

	// placeholderSummary is used when an interview is ended with no turns
	// recorded. Unreachable through Start, kept as a defensive case.
	placeholderSummary = "No conversation recorded."
)

// Engine drives interview sessions against an LLM gateway.
type Engine struct {
	gateway storee.Gateway
	model   string
	now     func() time.Time
	newID   func() string
}

// Option configures an [Engine].
type Option func(*Engine)

// WithModel sets the model ID for gateway requests. Empty string means the
// gateway uses its default model.
func WithModel(model string) Option {
	return func(e *Engine) { e.model = model }
}

// WithClock overrides the time source. Useful for testing.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDFunc overrides session ID generation. Useful for testing.
func WithIDFunc(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates a new Engine with the given gateway and options.
func New(gateway storee.Gateway, opts ...Option) *Engine {
	e := &Engine{
		gateway: gateway,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start creates a new active session for owner. If initialContext is
// non-empty it is recorded as an opening subject turn before the fixed
// opening question. Start never calls the gateway.
func (e *Engine) Start(owner, initialContext string) (storee.Session, error) {
	if owner == "" {
		return storee.Session{}, fmt.Errorf("owner is required: %w", storee.ErrValidation)
	}

	now := e.now()
	var turns []storee.Turn
	if initialContext != "" {
		turns = append(turns, storee.Turn{
			Speaker: storee.SpeakerSubject,
			Text:    "I'd like to talk about: " + initialContext,
			At:      now,
		})
	}
	turns = append(turns, storee.Turn{
		Speaker: storee.SpeakerAssistant,
		Text:    openingQuestion,
		At:      now,
	})

	return storee.Session{
		ID:              e.newID(),
		Owner:           owner,
		Status:          storee.StatusActive,
		Turns:           turns,
		CurrentQuestion: openingQuestion,
		InitialContext:  initialContext,
		CreatedAt:       now,
		LastUpdatedAt:   now,
	}, nil
}

// Continue appends the subject's reply, asks the gateway for the next
// question, and appends it as an assistant turn. The input session is not
// mutated; on error the caller's session is unchanged. Exactly one gateway
// call is made and no retry is attempted.
func (e *Engine) Continue(ctx context.Context, session storee.Session, reply string) (storee.Session, error) {
	if session.Ended() {
		return storee.Session{}, fmt.Errorf("cannot continue a %s session: %w", describeState(session), storee.ErrInvalidState)
	}
	if strings.TrimSpace(reply) == "" {
		return storee.Session{}, fmt.Errorf("reply is required: %w", storee.ErrValidation)
	}

	now := e.now()
	turns := cloneTurns(session.Turns, 2)
	turns = append(turns, storee.Turn{
		Speaker: storee.SpeakerSubject,
		Text:    reply,
		At:      now,
	})

	req := ComposeQuestion(turns)
	req.Model = e.model
	resp, err := e.gateway.Complete(ctx, req)
	if err != nil {
		return storee.Session{}, fmt.Errorf("next question: %w", err)
	}
	question := strings.TrimSpace(resp.Text)
	if question == "" {
		return storee.Session{}, fmt.Errorf("gateway returned an empty question: %w", storee.ErrGateway)
	}

	turns = append(turns, storee.Turn{
		Speaker: storee.SpeakerAssistant,
		Text:    question,
		At:      e.now(),
	})

	session.Turns = turns
	session.CurrentQuestion = question
	session.LastUpdatedAt = e.now()
	return session, nil
}

// End produces the factual summary of the conversation and stamps EndedAt.
// It does not flip Status: ending the conversation and committing it as a
// memory are independent user actions, and the completed transition belongs
// to the Materializer. Ending an already-ended session fails with
// ErrInvalidState.
func (e *Engine) End(ctx context.Context, session storee.Session) (storee.Session, error) {
	if session.Ended() {
		return storee.Session{}, fmt.Errorf("cannot end a %s session: %w", describeState(session), storee.ErrInvalidState)
	}

	if len(session.Turns) == 0 {
		session.Summary = placeholderSummary
		session.EndedAt = e.now()
		session.LastUpdatedAt = session.EndedAt
		return session, nil
	}

	req := ComposeSummary(session.Turns)
	req.Model = e.model
	resp, err := e.gateway.Complete(ctx, req)
	if err != nil {
		return storee.Session{}, fmt.Errorf("summarize: %w", err)
	}
	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		return storee.Session{}, fmt.Errorf("gateway returned an empty summary: %w", storee.ErrGateway)
	}

	session.Summary = summary
	session.EndedAt = e.now()
	session.LastUpdatedAt = session.EndedAt
	return session, nil
}

// SuggestTitle asks the gateway for a short factual title grounded in the
// subject's own words. Title suggestion is cosmetic: when the turn history
// has no subject turns, or the gateway fails or returns nothing usable, the
// fixed fallback is returned instead of an error.
func (e *Engine) SuggestTitle(ctx context.Context, turns []storee.Turn) string {
	var subject []storee.Turn
	for _, t := range turns {
		if t.Speaker == storee.SpeakerSubject {
			subject = append(subject, t)
		}
	}
	if len(subject) == 0 {
		return fallbackTitle
	}

	req := ComposeTitle(subject)
	req.Model = e.model
	resp, err := e.gateway.Complete(ctx, req)
	if err != nil {
		return fallbackTitle
	}
	return CleanTitle(resp.Text)
}

// cloneTurns copies turns with room for extra appends, so engine operations
// never mutate the caller's slice through a shared backing array.
func cloneTurns(turns []storee.Turn, extra int) []storee.Turn {
	out := make([]storee.Turn, len(turns), len(turns)+extra)
	copy(out, turns)
	return out
}

func describeState(s storee.Session) string {
	if s.Status == storee.StatusActive {
		return "summarized"
	}
	return string(s.Status)
}
