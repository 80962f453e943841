package llm

import (
	"context"
	"strings"
	"testing"
)

func TestBuildPromptFraming(t *testing.T) {
	prompt := BuildPrompt(TurnContext{
		SystemPrompt: "You are a debater.",
		Topic:        "The Future of Humanity",
		Round:        2,
	})

	if !strings.Contains(prompt, "The debate topic is: The Future of Humanity. This is round 2.") {
		t.Errorf("Missing framing sentence, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "1-2 sentences") {
		t.Errorf("Missing length instruction, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "The debate so far") {
		t.Errorf("Empty history should not render a transcript section, got:\n%s", prompt)
	}
	// System prompt travels as the system message, never inline.
	if strings.Contains(prompt, "You are a debater.") {
		t.Errorf("System prompt leaked into user prompt:\n%s", prompt)
	}
}

func TestBuildPromptHistoryOrder(t *testing.T) {
	prompt := BuildPrompt(TurnContext{
		Topic: "AI",
		Round: 1,
		PriorTurns: []Exchange{
			{Speaker: "Nikola Tesla", Text: "Electricity will free us."},
			{Speaker: "Friedrich Nietzsche", Text: "Freedom is not given."},
		},
	})

	first := strings.Index(prompt, "Nikola Tesla: Electricity will free us.")
	second := strings.Index(prompt, "Friedrich Nietzsche: Freedom is not given.")
	if first == -1 || second == -1 {
		t.Fatalf("Transcript lines missing, got:\n%s", prompt)
	}
	if first > second {
		t.Errorf("Transcript lines out of emission order, got:\n%s", prompt)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	tc := TurnContext{
		Topic: "Space travel",
		Round: 3,
		PriorTurns: []Exchange{
			{Speaker: "A", Text: "one"},
			{Speaker: "B", Text: "two"},
		},
	}

	if BuildPrompt(tc) != BuildPrompt(tc) {
		t.Error("Same context rendered different prompts")
	}
}

// recordingGenerator records which router branch was taken.
type recordingGenerator struct {
	name  string
	calls []string
}

func (g *recordingGenerator) GenerateTurn(ctx context.Context, modelID string, tc TurnContext) (string, error) {
	g.calls = append(g.calls, modelID)
	return g.name, nil
}

func TestRuntimesRouting(t *testing.T) {
	openai := &recordingGenerator{name: "openai"}
	gemini := &recordingGenerator{name: "gemini"}
	router := NewRuntimes(openai, gemini)

	tests := []struct {
		modelID string
		want    string
	}{
		{"gpt-4o-mini", "openai"},
		{"gemini-2.0-flash", "gemini"},
		{"o3-mini", "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.modelID, func(t *testing.T) {
			got, err := router.GenerateTurn(context.Background(), tt.modelID, TurnContext{})
			if err != nil {
				t.Fatalf("GenerateTurn failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Model %s routed to %s, want %s", tt.modelID, got, tt.want)
			}
		})
	}
}

func TestRuntimesGeminiFallback(t *testing.T) {
	openai := &recordingGenerator{name: "openai"}
	router := NewRuntimes(openai, nil)

	got, err := router.GenerateTurn(context.Background(), "gemini-2.0-flash", TurnContext{})
	if err != nil {
		t.Fatalf("GenerateTurn failed: %v", err)
	}
	if got != "openai" {
		t.Errorf("Expected fallback to openai runtime, got %s", got)
	}
}
