package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/storee/storee"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ storee.Gateway = (*Client)(nil)

// Client implements [storee.Gateway] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-3.1-pro-preview.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Complete sends a unary generation request to the Gemini API.
func (c *Client) Complete(ctx context.Context, req storee.CompletionRequest) (storee.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return storee.CompletionResponse{}, err
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	contents := ConvertTurns(req.Turns)
	config := buildConfig(req)

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return storee.CompletionResponse{}, fmt.Errorf("gemini: %v: %w", err, storee.ErrGateway)
	}

	text := strings.TrimSpace(collectText(resp))
	if text == "" {
		return storee.CompletionResponse{}, fmt.Errorf("gemini: empty completion: %w", storee.ErrGateway)
	}

	return storee.CompletionResponse{
		Text:  text,
		Usage: convertUsage(resp.UsageMetadata),
	}, nil
}

func buildConfig(req storee.CompletionRequest) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}

	return config
}

// ConvertTurns converts storee Turns to genai Contents.
// Exported for testing.
func ConvertTurns(turns []storee.Turn) []*genai.Content {
	var result []*genai.Content
	for _, t := range turns {
		role := "user"
		if t.Speaker == storee.SpeakerAssistant {
			role = "model"
		}
		result = append(result, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Text}},
		})
	}
	return result
}

// collectText concatenates the text parts of the first candidate, skipping
// thought parts.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func convertUsage(meta *genai.GenerateContentResponseUsageMetadata) storee.Usage {
	if meta == nil {
		return storee.Usage{}
	}
	return storee.Usage{
		InputTokens:  int(meta.PromptTokenCount),
		OutputTokens: int(meta.CandidatesTokenCount),
	}
}
