package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/debatecast/debatecast/pkg/audio"
)

const (
	openAITTSEndpoint   = "https://api.openai.com/v1/audio/speech"
	openAIDefaultModel  = "gpt-4o-mini-tts"
	openAIDefaultVoice  = "alloy"
	openAIResponseCodec = "mp3"
)

// OpenAI supported voices
var openAIVoices = []string{
	"alloy", "ash", "ballad", "coral", "echo", "fable",
	"nova", "onyx", "sage", "shimmer", "verse",
}

// OpenAIProvider synthesizes speech through the OpenAI speech endpoint.
// The API returns a compressed stream; the provider transcodes it to
// canonical PCM through the external transcoder before wrapping it as WAV.
type OpenAIProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
	transcoder *audio.Transcoder
}

// openAISpeechRequest is the request payload for the speech endpoint.
type openAISpeechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// NewOpenAIProvider creates the cloud synthesis backend.
func NewOpenAIProvider(apiKey string, transcoder *audio.Transcoder) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:     apiKey,
		model:      openAIDefaultModel,
		endpoint:   openAITTSEndpoint,
		httpClient: &http.Client{},
		transcoder: transcoder,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// SetModel overrides the speech model.
func (p *OpenAIProvider) SetModel(model string) {
	p.model = model
}

// SetEndpoint overrides the API endpoint. Test hook.
func (p *OpenAIProvider) SetEndpoint(endpoint string) {
	p.endpoint = endpoint
}

// Synthesize requests a compressed clip from the API and normalizes it to
// the canonical WAV container.
func (p *OpenAIProvider) Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeResponse, error) {
	if err := p.ValidateConfig(); err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: err}
	}

	voice := req.VoiceID
	if voice == "" {
		voice = openAIDefaultVoice
	}

	payload := openAISpeechRequest{
		Model:          p.model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: openAIResponseCodec,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SynthesisError{
			Provider: p.Name(),
			Err:      fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(msg)),
		}
	}

	encoded, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("read response: %w", err)}
	}
	if len(encoded) == 0 {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("empty audio stream")}
	}

	pcm, err := p.transcoder.DecodeToCanonicalPCM(ctx, encoded, openAIResponseCodec)
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: err}
	}

	log.Printf("[OpenAITTS] voice=%s synthesized %d PCM bytes", voice, len(pcm))
	return &SynthesizeResponse{
		WAV: audio.EncodeWAV(pcm, audio.CanonicalSampleRate, audio.CanonicalChannels),
	}, nil
}

// SupportedVoices returns the known OpenAI voice names.
func (p *OpenAIProvider) SupportedVoices() []string {
	return openAIVoices
}

// ValidateConfig validates the provider configuration.
func (p *OpenAIProvider) ValidateConfig() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key is not set")
	}
	return nil
}

var _ Provider = (*OpenAIProvider)(nil)
