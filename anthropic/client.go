package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.Gateway = (*Client)(nil)

// Client implements [storee.Gateway] for the Anthropic Messages API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithModel sets the model ID. Default is claude-sonnet-4-20250514.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Anthropic [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends a unary request to the Anthropic Messages API.
func (c *Client) Complete(ctx context.Context, req storee.CompletionRequest) (storee.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return storee.CompletionResponse{}, err
	}

	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return storee.CompletionResponse{}, fmt.Errorf("anthropic: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return storee.CompletionResponse{}, fmt.Errorf("anthropic: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return storee.CompletionResponse{}, fmt.Errorf("anthropic: %v: %w", err, storee.ErrGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return storee.CompletionResponse{}, parseHTTPError(resp)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return storee.CompletionResponse{}, fmt.Errorf("anthropic: decode response: %v: %w", err, storee.ErrGateway)
	}

	text := strings.TrimSpace(collectText(apiResp.Content))
	if text == "" {
		return storee.CompletionResponse{}, fmt.Errorf("anthropic: empty completion: %w", storee.ErrGateway)
	}

	return storee.CompletionResponse{
		Text: text,
		Usage: storee.Usage{
			InputTokens:  apiResp.Usage.InputTokens,
			OutputTokens: apiResp.Usage.OutputTokens,
		},
	}, nil
}

func (c *Client) buildRequest(req storee.CompletionRequest) apiRequest {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	apiReq := apiRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      convertSystem(req.System),
		Messages:    convertTurns(req.Turns),
		Temperature: req.Temperature,
	}
	// The system prompt is stable across an interview; mark it cacheable.
	if len(apiReq.System) > 0 {
		apiReq.System[len(apiReq.System)-1].CacheControl = &apiCacheControl{Type: "ephemeral"}
	}
	return apiReq
}

// convertSystem converts a system prompt string to an array of content blocks
// suitable for the Anthropic API. Returns nil when the prompt is empty.
func convertSystem(prompt string) []apiContentBlock {
	if prompt == "" {
		return nil
	}
	return []apiContentBlock{{Type: "text", Text: prompt}}
}

// convertTurns converts storee Turns to Anthropic API messages.
func convertTurns(turns []storee.Turn) []apiMessage {
	var result []apiMessage
	for _, t := range turns {
		role := "user"
		if t.Speaker == storee.SpeakerAssistant {
			role = "assistant"
		}
		result = append(result, apiMessage{
			Role:    role,
			Content: []apiContentBlock{{Type: "text", Text: t.Text}},
		})
	}
	return result
}

func collectText(blocks []apiContentBlock) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: HTTP %d (failed to read body: %v): %w", resp.StatusCode, err, storee.ErrGateway)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return fmt.Errorf("anthropic: HTTP %d: %s: %w", resp.StatusCode, string(body), storee.ErrGateway)
	}
	return fmt.Errorf("anthropic: %s: %s: %w", apiErr.Error.Type, apiErr.Error.Message, storee.ErrGateway)
}
