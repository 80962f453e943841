// Package debate orchestrates multi-persona debates: it sequences turns
// across rounds, feeds each persona the growing transcript, synthesizes
// audio per turn, and assembles the clips into one podcast episode.
package debate

import (
	"fmt"
)

// Request describes one debate run.
type Request struct {
	Topic          string   `json:"topic"`
	Rounds         int      `json:"rounds"`
	ParticipantIDs []string `json:"participants"`
	GenerateAudio  bool     `json:"generate_audio"`
}

// Turn is one persona's utterance, optionally paired with its audio clip.
// The sequence is append-only and ordered by actual emission, not by
// participant order.
type Turn struct {
	Speaker  string `json:"speaker"`
	Text     string `json:"text"`
	AudioRef string `json:"audio_ref,omitempty"`
}

// Result is the completed debate: the transcript, the assembled episode (if
// any), and a best-effort duration. Constructed once at the end of the run.
type Result struct {
	Status         string `json:"status"`
	Transcript     []Turn `json:"transcript"`
	PodcastRef     string `json:"podcast_ref,omitempty"`
	Duration       string `json:"duration,omitempty"`
	AudioGenerated bool   `json:"audio_generated"`
}

// ValidationError rejects a request before any generation work starts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid debate request: " + e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
