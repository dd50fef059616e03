package storee_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/storee/storee"
)

func TestSession_Active(t *testing.T) {
	t.Parallel()
	assert.True(t, storee.Session{Status: storee.StatusActive}.Active())
	assert.False(t, storee.Session{Status: storee.StatusCompleted}.Active())
	assert.False(t, storee.Session{Status: storee.StatusAbandoned}.Active())
}

func TestSession_Ended(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session storee.Session
		want    bool
	}{
		{"active without summary", storee.Session{Status: storee.StatusActive}, false},
		{"active with summary", storee.Session{Status: storee.StatusActive, Summary: "We talked."}, true},
		{"completed", storee.Session{Status: storee.StatusCompleted}, true},
		{"abandoned", storee.Session{Status: storee.StatusAbandoned}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.session.Ended())
		})
	}
}

func TestSession_SubjectTurns(t *testing.T) {
	t.Parallel()
	now := time.Now()
	s := storee.Session{
		Turns: []storee.Turn{
			{Speaker: storee.SpeakerSubject, Text: "I'd like to talk about: my wedding", At: now},
			{Speaker: storee.SpeakerAssistant, Text: "What's a memory you'd like to share today?", At: now},
			{Speaker: storee.SpeakerSubject, Text: "It was in June 2010", At: now},
		},
	}

	subject := s.SubjectTurns()
	assert.Len(t, subject, 2)
	assert.Equal(t, "I'd like to talk about: my wedding", subject[0].Text)
	assert.Equal(t, "It was in June 2010", subject[1].Text)
}

func TestSession_SubjectTurns_Empty(t *testing.T) {
	t.Parallel()
	s := storee.Session{
		Turns: []storee.Turn{{Speaker: storee.SpeakerAssistant, Text: "Hello?"}},
	}
	assert.Empty(t, s.SubjectTurns())
}
