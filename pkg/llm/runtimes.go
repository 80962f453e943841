package llm

import (
	"context"
	"strings"
)

// Runtimes routes each turn to the runtime that serves the persona's model.
// Model IDs beginning with "gemini-" go to the Gemini runtime when one is
// configured; everything else goes to OpenAI.
type Runtimes struct {
	openai Generator
	gemini Generator
}

// NewRuntimes builds the router. gemini may be nil; gemini-* models then fall
// back to the OpenAI runtime (useful behind OpenAI-compatible gateways).
func NewRuntimes(openai, gemini Generator) *Runtimes {
	return &Runtimes{openai: openai, gemini: gemini}
}

// GenerateTurn dispatches to the runtime selected by modelID.
func (r *Runtimes) GenerateTurn(ctx context.Context, modelID string, tc TurnContext) (string, error) {
	if r.gemini != nil && strings.HasPrefix(modelID, "gemini-") {
		return r.gemini.GenerateTurn(ctx, modelID, tc)
	}
	return r.openai.GenerateTurn(ctx, modelID, tc)
}

var _ Generator = (*Runtimes)(nil)
