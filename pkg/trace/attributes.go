package trace

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys used across the debate pipeline.
const (
	AttrDebateTopic        = "debate.topic"
	AttrDebateRounds       = "debate.rounds"
	AttrDebateParticipants = "debate.participants"
	AttrDebateRunID        = "debate.run_id"

	AttrTurnRound   = "turn.round"
	AttrTurnSpeaker = "turn.speaker"

	AttrLLMModel = "llm.model"

	AttrTTSProvider = "tts.provider"
	AttrTTSVoice    = "tts.voice"

	AttrAudioClipCount = "audio.clip_count"
)

// DebateAttrs creates attributes for a debate run.
func DebateAttrs(runID, topic string, rounds, participants int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrDebateRunID, runID),
		attribute.String(AttrDebateTopic, topic),
		attribute.Int(AttrDebateRounds, rounds),
		attribute.Int(AttrDebateParticipants, participants),
	}
}

// TurnAttrs creates attributes for one debate turn.
func TurnAttrs(round int, speaker, model string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrTurnRound, round),
		attribute.String(AttrTurnSpeaker, speaker),
		attribute.String(AttrLLMModel, model),
	}
}

// SynthesisAttrs creates attributes for a synthesis call.
func SynthesisAttrs(provider, voice string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrTTSProvider, provider),
		attribute.String(AttrTTSVoice, voice),
	}
}
