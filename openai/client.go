package openai

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/storee/storee"
)

// api captures the subset of the go-openai client the package uses.
type api interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Interface compliance checks.
var (
	_ storee.Gateway     = (*Client)(nil)
	_ storee.Transcriber = (*Client)(nil)
	_ storee.Embedder    = (*Client)(nil)
)

// Client implements the OpenAI-backed gateway, transcriber and embedder.
type Client struct {
	api            api
	model          string
	embeddingModel openai.EmbeddingModel
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the chat model. Default is gpt-4.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithEmbeddingModel sets the embedding model. Default is text-embedding-3-small.
func WithEmbeddingModel(model string) Option {
	return func(c *Client) { c.embeddingModel = openai.EmbeddingModel(model) }
}

// New creates a new OpenAI [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		api:            openai.NewClient(apiKey),
		model:          defaultModel,
		embeddingModel: defaultEmbeddingModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends a chat completion request to the OpenAI API.
func (c *Client) Complete(ctx context.Context, req storee.CompletionRequest) (storee.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return storee.CompletionResponse{}, err
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	request := openai.ChatCompletionRequest{
		Model:     model,
		Messages:  ConvertTurns(req.System, req.Turns),
		MaxTokens: maxTokens,
	}
	if req.Temperature != nil {
		request.Temperature = float32(*req.Temperature)
	}

	resp, err := c.api.CreateChatCompletion(ctx, request)
	if err != nil {
		return storee.CompletionResponse{}, fmt.Errorf("openai: %v: %w", err, storee.ErrGateway)
	}
	if len(resp.Choices) == 0 {
		return storee.CompletionResponse{}, fmt.Errorf("openai: no choices: %w", storee.ErrGateway)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return storee.CompletionResponse{}, fmt.Errorf("openai: empty completion: %w", storee.ErrGateway)
	}

	return storee.CompletionResponse{
		Text: text,
		Usage: storee.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// Transcribe sends audio to the Whisper transcription endpoint. The filename
// carries the format extension the API uses to decode the stream.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("openai: filename is required: %w", storee.ErrValidation)
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    transcriptionModel,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("openai: transcription: %v: %w", err, storee.ErrGateway)
	}
	return resp.Text, nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: embeddings: %v: %w", err, storee.ErrGateway)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai: no embedding data: %w", storee.ErrGateway)
	}
	return resp.Data[0].Embedding, nil
}

// ConvertTurns converts a system prompt and storee Turns to OpenAI chat
// messages. Exported for testing.
func ConvertTurns(system string, turns []storee.Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		if t.Speaker == storee.SpeakerAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: t.Text,
		})
	}
	return messages
}
