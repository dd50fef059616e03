// Package mock provides test doubles for storee interfaces using function fields.
package mock

import (
	"context"

	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.Gateway = (*Gateway)(nil)

// Gateway is a test double for storee.Gateway.
// Set CompleteFn before calling Complete. Calls counts invocations.
type Gateway struct {
	CompleteFn func(ctx context.Context, req storee.CompletionRequest) (storee.CompletionResponse, error)
	Calls      int
}

// Complete delegates to CompleteFn.
func (g *Gateway) Complete(ctx context.Context, req storee.CompletionRequest) (storee.CompletionResponse, error) {
	g.Calls++
	return g.CompleteFn(ctx, req)
}
