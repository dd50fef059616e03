package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storee/storee"
	"github.com/storee/storee/gemini"
)

func TestConvertTurns(t *testing.T) {
	t.Parallel()

	turns := []storee.Turn{
		{Speaker: storee.SpeakerSubject, Text: "I'd like to talk about: my wedding"},
		{Speaker: storee.SpeakerAssistant, Text: "What's a memory you'd like to share today?"},
		{Speaker: storee.SpeakerSubject, Text: "It was in June 2010"},
	}

	contents := gemini.ConvertTurns(turns)
	require.Len(t, contents, 3)

	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "user", contents[2].Role)

	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "I'd like to talk about: my wedding", contents[0].Parts[0].Text)
}

func TestConvertTurns_Empty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, gemini.ConvertTurns(nil))
}
