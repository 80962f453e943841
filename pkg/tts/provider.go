// Package tts abstracts speech synthesis behind one provider contract.
//
// Two interchangeable backends exist: the OpenAI speech API (cloud) and a
// locally hosted Bark inference server. Whichever backend runs, the response
// is the same canonical container — mono, 24 kHz, 16-bit PCM WAV — so the
// assembly stage never needs to know which produced a clip.
package tts

import (
	"context"
	"fmt"
)

// SynthesizeRequest carries one turn's text and the persona's voice.
type SynthesizeRequest struct {
	Text    string
	VoiceID string
}

// SynthesizeResponse holds the synthesized clip as a canonical WAV container.
type SynthesizeResponse struct {
	WAV []byte
}

// Provider is the capability every synthesis backend implements. Selection
// between backends happens once at construction, not per call.
type Provider interface {
	// Name returns the backend name (e.g. "openai", "bark").
	Name() string

	// Synthesize converts text to a canonical WAV clip.
	Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeResponse, error)

	// ValidateConfig reports missing credentials or settings.
	ValidateConfig() error
}

// SynthesisError wraps a backend failure. The debate engine isolates it to
// the single turn: the turn keeps its text and simply loses its audio.
type SynthesisError struct {
	Provider string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed (%s): %v", e.Provider, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
