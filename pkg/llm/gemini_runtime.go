package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// GeminiRuntime generates utterances through the Gemini API.
type GeminiRuntime struct {
	client *genai.Client
}

// NewGeminiRuntime creates a runtime backed by the Google AI endpoint.
func NewGeminiRuntime(ctx context.Context, apiKey string) (*GeminiRuntime, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGoogleAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiRuntime{client: client}, nil
}

// GenerateTurn runs a single generateContent call for one debate turn.
func (r *GeminiRuntime) GenerateTurn(ctx context.Context, modelID string, tc TurnContext) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: tc.SystemPrompt},
			},
		},
	}

	resp, err := r.client.Models.GenerateContent(ctx, modelID, genai.Text(BuildPrompt(tc)), cfg)
	if err != nil {
		return "", &GenerationError{ModelID: modelID, Err: err}
	}

	text := strings.TrimSpace(collectText(resp))
	if text == "" {
		return "", &GenerationError{ModelID: modelID, Err: fmt.Errorf("empty response")}
	}

	log.Printf("[GeminiRuntime] model=%s round=%d generated %d chars", modelID, tc.Round, len(text))
	return text, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

var _ Generator = (*GeminiRuntime)(nil)
