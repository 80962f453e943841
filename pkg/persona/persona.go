// Package persona manages the debate participant definitions.
// A persona couples a display name and system prompt with the model that
// generates its utterances and the voice that speaks them.
package persona

import (
	"context"
	"fmt"
)

// Persona is one configured debate participant. Immutable for the duration
// of a debate run.
type Persona struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	SystemPrompt string `json:"system_prompt"`
	VoiceID      string `json:"voice_id"`
	ModelID      string `json:"model_id"`
}

// Reader is the read-only view the debate engine depends on.
type Reader interface {
	// Get returns the persona with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Persona, error)

	// List returns all known persona IDs.
	List(ctx context.Context) ([]string, error)
}

// Store extends Reader with the addition workflow used by the HTTP layer.
// The engine never writes; keeping the interfaces split makes that explicit.
type Store interface {
	Reader

	// Add registers a new persona. Returns ErrAlreadyExists if the ID is taken.
	Add(ctx context.Context, p Persona) error
}

// ErrNotFound is returned by Get for unknown persona IDs.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("persona %q not found", e.ID)
}

// ErrAlreadyExists is returned by Add for duplicate persona IDs.
type ErrAlreadyExists struct {
	ID string
}

func (e *ErrAlreadyExists) Error() string {
	return fmt.Sprintf("persona %q already exists", e.ID)
}

// Validate checks that a persona definition is complete enough to debate.
func (p Persona) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("persona ID is required")
	}
	if p.DisplayName == "" {
		return fmt.Errorf("persona display name is required")
	}
	if p.SystemPrompt == "" {
		return fmt.Errorf("persona system prompt is required")
	}
	if p.VoiceID == "" {
		return fmt.Errorf("persona voice ID is required")
	}
	if p.ModelID == "" {
		return fmt.Errorf("persona model ID is required")
	}
	return nil
}
