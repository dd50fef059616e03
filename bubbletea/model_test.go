package bubbletea_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storee/storee"
	bt "github.com/storee/storee/bubbletea"
	"github.com/storee/storee/interview"
	"github.com/storee/storee/mock"
)

// initModel builds a model over an engine with the given gateway and sends a
// WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, gateway *mock.Gateway) bt.Model {
	t.Helper()
	engine := interview.New(gateway)
	session, err := engine.Start("u1", "my wedding")
	require.NoError(t, err)
	m := bt.New(engine, session, storee.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

func echoGateway(text string) *mock.Gateway {
	return &mock.Gateway{
		CompleteFn: func(context.Context, storee.CompletionRequest) (storee.CompletionResponse, error) {
			return storee.CompletionResponse{Text: text}, nil
		},
	}
}

func TestModel_SubmitReply(t *testing.T) {
	t.Parallel()

	m := initModel(t, echoGateway("How did the day begin?"))
	m.Input.SetValue("It was in June 2010")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(bt.Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Empty(t, m.Input.Value())

	// The pending answer shows before the gateway responds.
	assert.Contains(t, m.View(), "It was in June 2010")

	msg := cmd()
	q, ok := msg.(bt.QuestionMsg)
	require.True(t, ok)
	require.NoError(t, q.Err)

	m = updateModel(t, m, msg)
	assert.False(t, m.Busy())
	assert.Len(t, m.Session().Turns, 4)
	assert.Contains(t, m.View(), "How did the day begin?")
}

func TestModel_EmptyReplyIgnored(t *testing.T) {
	t.Parallel()

	m := initModel(t, echoGateway("next?"))
	m.Input.SetValue("   ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(bt.Model)
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
}

func TestModel_EndInterview(t *testing.T) {
	t.Parallel()

	m := initModel(t, echoGateway("We got **married** in June 2010."))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = updated.(bt.Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())

	msg := cmd()
	s, ok := msg.(bt.SummaryMsg)
	require.True(t, ok)
	require.NoError(t, s.Err)

	m = updateModel(t, m, msg)
	assert.True(t, m.Ended())
	assert.Equal(t, "We got **married** in June 2010.", m.Session().Summary)

	view := m.View()
	assert.Contains(t, view, "Summary")
	assert.Contains(t, view, "married")
	assert.NotContains(t, view, "**", "summary is rendered, not raw markdown")

	// Input is done: Enter does nothing once ended.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestModel_ErrorHandsAnswerBack(t *testing.T) {
	t.Parallel()

	gateway := &mock.Gateway{
		CompleteFn: func(context.Context, storee.CompletionRequest) (storee.CompletionResponse, error) {
			return storee.CompletionResponse{}, fmt.Errorf("model overloaded: %w", storee.ErrGateway)
		},
	}
	m := initModel(t, gateway)
	m.Input.SetValue("my answer")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(bt.Model)
	require.NotNil(t, cmd)

	m = updateModel(t, m, cmd())
	assert.False(t, m.Busy())
	assert.Error(t, m.Err())
	assert.Equal(t, "my answer", m.Input.Value(), "failed answer returns for retry")
	assert.Len(t, m.Session().Turns, 2, "session unchanged on failure")
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_StatusLine(t *testing.T) {
	t.Parallel()

	m := initModel(t, echoGateway("next?"))
	view := m.View()
	assert.Contains(t, view, "Enter to answer")
	assert.Contains(t, view, "2 turns")
}

func TestModel_TranscriptLabels(t *testing.T) {
	t.Parallel()

	m := initModel(t, echoGateway("next?"))
	view := m.View()
	assert.Contains(t, view, "Interviewer")
	assert.True(t, strings.Contains(view, "capture your memories"))
}
