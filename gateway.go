package storee

import (
	"context"
	"fmt"
)

// Gateway is a strategy pattern interface for LLM text-completion backends.
// A call is a single blocking request/response exchange; cancellation and
// timeouts flow through the context. Implementations wrap transport and
// protocol failures in ErrGateway.
type Gateway interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// CompletionRequest carries model selection and generation parameters.
// The gateway uses its own defaults when fields are zero/nil.
type CompletionRequest struct {
	Model       string // model ID, gateway-specific; empty = gateway default
	System      string // system instruction, placed before the turn history
	Turns       []Turn
	MaxTokens   int      // 0 = gateway default
	Temperature *float64 // nil = gateway default
}

// Validate checks universal constraints on CompletionRequest.
// Gateway implementations may apply additional backend-specific validation.
func (r CompletionRequest) Validate() error {
	if r.Temperature != nil {
		if *r.Temperature < 0 || *r.Temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *r.Temperature, ErrValidation)
		}
	}
	if r.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", r.MaxTokens, ErrValidation)
	}
	return nil
}

// CompletionResponse is the gateway's answer. Text is never empty on a nil
// error; gateways that receive an empty completion report ErrGateway instead.
type CompletionResponse struct {
	Text  string
	Usage Usage
}

// Usage tracks token consumption for a single gateway call.
// Gateways normalize their API-specific fields to these two counters.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
