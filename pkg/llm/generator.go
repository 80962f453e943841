// Package llm generates debate utterances through pluggable model runtimes.
//
// Each persona names its own model; the Runtimes router picks the runtime
// from the model ID (gemini-* goes to Gemini, everything else to the OpenAI
// chat completions API). The package's one design responsibility besides the
// pass-through is deterministic prompt assembly: the same TurnContext always
// renders the same prompt.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Exchange is one prior utterance, rendered into the prompt as "speaker: text".
type Exchange struct {
	Speaker string
	Text    string
}

// TurnContext carries everything a runtime needs to produce the next utterance.
type TurnContext struct {
	SystemPrompt string
	Topic        string
	Round        int
	PriorTurns   []Exchange
}

// Generator produces the next utterance for a persona's turn.
type Generator interface {
	GenerateTurn(ctx context.Context, modelID string, tc TurnContext) (string, error)
}

// GenerationError wraps a model runtime failure or empty output. The debate
// engine treats it as fatal: later turns depend on this one's text.
type GenerationError struct {
	ModelID string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (model %s): %v", e.ModelID, e.Err)
	}
	return fmt.Sprintf("generation failed (model %s)", e.ModelID)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// BuildPrompt renders the user-facing prompt for one turn: a framing sentence
// naming the topic and round, the prior transcript in strict emission order,
// and a fixed length instruction. The persona's system prompt travels
// separately as the system message.
func BuildPrompt(tc TurnContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The debate topic is: %s. This is round %d.\n", tc.Topic, tc.Round)

	if len(tc.PriorTurns) > 0 {
		b.WriteString("\nThe debate so far:\n")
		for _, ex := range tc.PriorTurns {
			fmt.Fprintf(&b, "%s: %s\n", ex.Speaker, ex.Text)
		}
	}

	b.WriteString("\nIt is your turn to speak. Respond to the discussion in 1-2 sentences.")
	return b.String()
}
