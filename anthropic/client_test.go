package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storee/storee"
	"github.com/storee/storee/anthropic"
)

func TestClient_Complete(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("Anthropic-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": " What happened next? "}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 25, "output_tokens": 9}
		}`))
	}))
	defer srv.Close()

	client := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))

	temp := 0.7
	resp, err := client.Complete(context.Background(), storee.CompletionRequest{
		System:      "You are an interviewer.",
		Turns:       []storee.Turn{{Speaker: storee.SpeakerSubject, Text: "hi"}},
		MaxTokens:   200,
		Temperature: &temp,
	})
	require.NoError(t, err)

	assert.Equal(t, "What happened next?", resp.Text)
	assert.Equal(t, storee.Usage{InputTokens: 25, OutputTokens: 9}, resp.Usage)

	assert.Equal(t, "claude-sonnet-4-20250514", got["model"])
	assert.Equal(t, float64(200), got["max_tokens"])
	assert.InDelta(t, 0.7, got["temperature"].(float64), 0.001)

	system, ok := got["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	sysBlock := system[0].(map[string]any)
	assert.Equal(t, "You are an interviewer.", sysBlock["text"])
	assert.NotNil(t, sysBlock["cache_control"], "stable system prompt should carry a cache breakpoint")

	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestClient_Complete_RoleMapping(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "ok"}], "usage": {"input_tokens": 1, "output_tokens": 1}}`))
	}))
	defer srv.Close()

	client := anthropic.New("k", anthropic.WithBaseURL(srv.URL))

	_, err := client.Complete(context.Background(), storee.CompletionRequest{
		Turns: []storee.Turn{
			{Speaker: storee.SpeakerAssistant, Text: "What happened next?"},
			{Speaker: storee.SpeakerSubject, Text: "We drove to the coast."},
		},
	})
	require.NoError(t, err)

	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "assistant", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestClient_Complete_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer srv.Close()

	client := anthropic.New("k", anthropic.WithBaseURL(srv.URL))

	_, err := client.Complete(context.Background(), storee.CompletionRequest{
		Turns: []storee.Turn{{Speaker: storee.SpeakerSubject, Text: "hi"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, storee.ErrGateway)
	assert.Contains(t, err.Error(), "rate_limit_error")
	assert.Contains(t, err.Error(), "slow down")
}

func TestClient_Complete_EmptyContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content": [], "usage": {"input_tokens": 1, "output_tokens": 0}}`))
	}))
	defer srv.Close()

	client := anthropic.New("k", anthropic.WithBaseURL(srv.URL))

	_, err := client.Complete(context.Background(), storee.CompletionRequest{
		Turns: []storee.Turn{{Speaker: storee.SpeakerSubject, Text: "hi"}},
	})
	assert.ErrorIs(t, err, storee.ErrGateway)
}

func TestClient_Complete_InvalidRequest(t *testing.T) {
	t.Parallel()

	client := anthropic.New("k")

	temp := 3.5
	_, err := client.Complete(context.Background(), storee.CompletionRequest{
		Turns:       []storee.Turn{{Speaker: storee.SpeakerSubject, Text: "hi"}},
		Temperature: &temp,
	})
	assert.ErrorIs(t, err, storee.ErrValidation)
}
