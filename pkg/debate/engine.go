package debate

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/debatecast/debatecast/pkg/artifact"
	"github.com/debatecast/debatecast/pkg/audio"
	"github.com/debatecast/debatecast/pkg/llm"
	"github.com/debatecast/debatecast/pkg/persona"
	"github.com/debatecast/debatecast/pkg/trace"
	"github.com/debatecast/debatecast/pkg/tts"
)

// Concatenator assembles ordered clips into one episode. Satisfied by
// *audio.Concatenator; an interface so engine tests never shell out.
type Concatenator interface {
	Assemble(ctx context.Context, inputPaths []string, outPath string) (time.Duration, error)
}

// Engine drives the debate state machine. One run owns its transcript
// exclusively; independent runs may execute concurrently because every
// artifact name is derived from a run-scoped ID.
type Engine struct {
	registry    persona.Reader
	generator   llm.Generator
	synthesizer tts.Provider
	store       *artifact.Store
	concat      Concatenator

	rng *rand.Rand

	// OnTurn, when set, observes each turn as it is emitted.
	OnTurn func(Turn)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand fixes the shuffle source. Production runs leave it unset and get
// an unpredictable speaking order; tests use it for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// NewEngine wires the orchestrator. synthesizer may be nil only if every
// request has GenerateAudio false.
func NewEngine(registry persona.Reader, generator llm.Generator, synthesizer tts.Provider, store *artifact.Store, concat Concatenator, opts ...Option) *Engine {
	e := &Engine{
		registry:    registry,
		generator:   generator,
		synthesizer: synthesizer,
		store:       store,
		concat:      concat,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes a full debate. It fails fast with ValidationError before any
// generation work; a generation failure aborts the run; synthesis and
// assembly failures degrade to text-only output, never aborting.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	participants, err := e.resolveParticipants(ctx, req)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()[:8]

	ctx, span := trace.StartSpan(ctx, "debate.run",
		oteltrace.WithAttributes(trace.DebateAttrs(runID, req.Topic, req.Rounds, len(participants))...))
	defer span.End()

	log.Printf("[Engine] run=%s topic=%q rounds=%d participants=%d audio=%v",
		runID, req.Topic, req.Rounds, len(participants), req.GenerateAudio)

	var transcript []Turn
	turnIndex := 0

	for round := 1; round <= req.Rounds; round++ {
		// Speaking order is re-randomized every round.
		order := e.rng.Perm(len(participants))

		for _, idx := range order {
			if err := ctx.Err(); err != nil {
				trace.RecordError(span, err)
				return nil, err
			}

			p := participants[idx]
			turn, err := e.runTurn(ctx, runID, req.Topic, round, turnIndex, p, transcript, req.GenerateAudio)
			if err != nil {
				trace.RecordError(span, err)
				return nil, err
			}

			transcript = append(transcript, turn)
			turnIndex++
			if e.OnTurn != nil {
				e.OnTurn(turn)
			}
		}
	}

	podcastRef, duration := e.assemble(ctx, runID, transcript, req.GenerateAudio)

	return &Result{
		Status:         "success",
		Transcript:     transcript,
		PodcastRef:     podcastRef,
		Duration:       duration,
		AudioGenerated: req.GenerateAudio,
	}, nil
}

// resolveParticipants validates the request and resolves every participant
// against the registry before any turn executes.
func (e *Engine) resolveParticipants(ctx context.Context, req Request) ([]persona.Persona, error) {
	if req.Topic == "" {
		return nil, validationErrorf("topic must not be empty")
	}
	if req.Rounds < 1 {
		return nil, validationErrorf("rounds must be at least 1, got %d", req.Rounds)
	}
	if len(req.ParticipantIDs) < 2 {
		return nil, validationErrorf("at least 2 participants required, got %d", len(req.ParticipantIDs))
	}

	seen := make(map[string]bool, len(req.ParticipantIDs))
	participants := make([]persona.Persona, 0, len(req.ParticipantIDs))
	for _, id := range req.ParticipantIDs {
		if seen[id] {
			return nil, validationErrorf("duplicate participant %q", id)
		}
		seen[id] = true

		p, err := e.registry.Get(ctx, id)
		if err != nil {
			return nil, validationErrorf("unknown participant %q", id)
		}
		participants = append(participants, p)
	}
	return participants, nil
}

// runTurn generates one utterance and, when requested, its audio clip.
// Synthesis failure is isolated here: the turn comes back without audio.
func (e *Engine) runTurn(ctx context.Context, runID, topic string, round, turnIndex int, p persona.Persona, prior []Turn, generateAudio bool) (Turn, error) {
	ctx, span := trace.StartSpan(ctx, "debate.turn",
		oteltrace.WithAttributes(trace.TurnAttrs(round, p.DisplayName, p.ModelID)...))
	defer span.End()

	text, err := e.generator.GenerateTurn(ctx, p.ModelID, llm.TurnContext{
		SystemPrompt: p.SystemPrompt,
		Topic:        topic,
		Round:        round,
		PriorTurns:   renderHistory(prior),
	})
	if err != nil {
		trace.RecordError(span, err)
		return Turn{}, fmt.Errorf("round %d, %s: %w", round, p.DisplayName, err)
	}

	turn := Turn{Speaker: p.DisplayName, Text: text}

	if !generateAudio {
		return turn, nil
	}

	ref, ok := e.synthesizeTurn(ctx, runID, turnIndex, p, text)
	if ok {
		turn.AudioRef = ref
	}
	return turn, nil
}

// synthesizeTurn is the failure-isolating boundary around the synthesis
// backend. Any error or empty clip logs and returns ok=false; the run
// continues without audio for this turn.
func (e *Engine) synthesizeTurn(ctx context.Context, runID string, turnIndex int, p persona.Persona, text string) (string, bool) {
	ctx, span := trace.StartSpan(ctx, "debate.synthesize",
		oteltrace.WithAttributes(trace.SynthesisAttrs(e.synthesizer.Name(), p.VoiceID)...))
	defer span.End()

	resp, err := e.synthesizer.Synthesize(ctx, &tts.SynthesizeRequest{
		Text:    text,
		VoiceID: p.VoiceID,
	})
	if err != nil {
		trace.RecordError(span, err)
		log.Printf("[Engine] synthesis failed for %s (turn %d): %v — continuing without audio", p.DisplayName, turnIndex, err)
		return "", false
	}
	if resp == nil || len(resp.WAV) == 0 {
		log.Printf("[Engine] synthesis returned no audio for %s (turn %d) — continuing without audio", p.DisplayName, turnIndex)
		return "", false
	}

	name := fmt.Sprintf("%s_turn_%03d.wav", runID, turnIndex)
	ref, err := e.store.Put(name, resp.WAV)
	if err != nil {
		trace.RecordError(span, err)
		log.Printf("[Engine] failed to persist clip for %s (turn %d): %v — continuing without audio", p.DisplayName, turnIndex, err)
		return "", false
	}
	return ref, true
}

// assemble concatenates the clips of turns that produced audio, in
// transcript order. Turns without audio are skipped, not padded with
// silence. Assembly failure degrades to "no podcast".
func (e *Engine) assemble(ctx context.Context, runID string, transcript []Turn, generateAudio bool) (string, string) {
	if !generateAudio {
		return "", ""
	}

	var paths []string
	for _, t := range transcript {
		if t.AudioRef == "" {
			continue
		}
		p, err := e.store.Path(t.AudioRef)
		if err != nil {
			log.Printf("[Engine] cannot resolve clip %q: %v — skipping", t.AudioRef, err)
			continue
		}
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		log.Printf("[Engine] run=%s produced no audio clips, skipping assembly", runID)
		return "", ""
	}

	ctx, span := trace.StartSpan(ctx, "debate.assemble",
		oteltrace.WithAttributes(
			attribute.String(trace.AttrDebateRunID, runID),
			attribute.Int(trace.AttrAudioClipCount, len(paths)),
		))
	defer span.End()

	podcastRef := runID + "_podcast.mp3"
	outPath, err := e.store.Path(podcastRef)
	if err != nil {
		trace.RecordError(span, err)
		return "", ""
	}

	duration, err := e.concat.Assemble(ctx, paths, outPath)
	if err != nil {
		trace.RecordError(span, err)
		log.Printf("[Engine] assembly failed for run %s: %v — returning transcript without podcast", runID, err)
		return "", ""
	}

	return podcastRef, audio.FormatDuration(duration)
}

// renderHistory converts the transcript to the generator's exchange form,
// preserving emission order.
func renderHistory(transcript []Turn) []llm.Exchange {
	if len(transcript) == 0 {
		return nil
	}
	out := make([]llm.Exchange, len(transcript))
	for i, t := range transcript {
		out[i] = llm.Exchange{Speaker: t.Speaker, Text: t.Text}
	}
	return out
}
