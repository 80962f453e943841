package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIRuntime generates utterances through the OpenAI chat completions API.
type OpenAIRuntime struct {
	client    openai.Client
	maxTokens int
}

// NewOpenAIRuntime creates a runtime with the given API key. baseURL is
// optional and supports OpenAI-compatible gateways.
func NewOpenAIRuntime(apiKey, baseURL string, maxTokens int) (*OpenAIRuntime, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIRuntime{
		client:    openai.NewClient(opts...),
		maxTokens: maxTokens,
	}, nil
}

// GenerateTurn runs a single non-streaming completion for one debate turn.
func (r *OpenAIRuntime) GenerateTurn(ctx context.Context, modelID string, tc TurnContext) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(tc.SystemPrompt),
			openai.UserMessage(BuildPrompt(tc)),
		},
		Model: shared.ChatModel(modelID),
	}
	if r.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(r.maxTokens))
	}

	completion, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &GenerationError{ModelID: modelID, Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &GenerationError{ModelID: modelID, Err: fmt.Errorf("no choices in response")}
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", &GenerationError{ModelID: modelID, Err: fmt.Errorf("empty completion")}
	}

	log.Printf("[OpenAIRuntime] model=%s round=%d generated %d chars", modelID, tc.Round, len(text))
	return text, nil
}

var _ Generator = (*OpenAIRuntime)(nil)
