package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/debatecast/debatecast/pkg/audio"
)

const barkDefaultPreset = "v2/en_speaker_6"

// barkPresets maps the voice IDs used by personas onto Bark speaker presets,
// so the same persona definition works against either backend.
var barkPresets = map[string]string{
	"alloy":   "v2/en_speaker_0",
	"echo":    "v2/en_speaker_1",
	"fable":   "v2/en_speaker_2",
	"onyx":    "v2/en_speaker_6",
	"nova":    "v2/en_speaker_9",
	"shimmer": "v2/en_speaker_5",
}

// BarkProvider synthesizes speech against a locally hosted Bark inference
// server. The server embeds raw PCM (base64) in its JSON response at the
// model's native rate; the provider decodes it and normalizes to the
// canonical WAV container in process.
type BarkProvider struct {
	serverURL  string
	httpClient *http.Client
}

type barkRequest struct {
	Text        string `json:"text"`
	VoicePreset string `json:"voice_preset"`
}

type barkResponse struct {
	Audio      string `json:"audio"`       // base64 s16le PCM
	SampleRate int    `json:"sample_rate"` // native model rate
	Channels   int    `json:"channels,omitempty"`
}

// NewBarkProvider creates the local synthesis backend.
func NewBarkProvider(serverURL string) *BarkProvider {
	return &BarkProvider{
		serverURL:  serverURL,
		httpClient: &http.Client{},
	}
}

// Name returns the provider name.
func (p *BarkProvider) Name() string {
	return "bark"
}

// Synthesize posts the text to the Bark server and normalizes the embedded
// audio payload.
func (p *BarkProvider) Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeResponse, error) {
	if err := p.ValidateConfig(); err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: err}
	}

	preset, ok := barkPresets[req.VoiceID]
	if !ok {
		preset = barkDefaultPreset
	}

	body, err := json.Marshal(barkRequest{Text: req.Text, VoicePreset: preset})
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.serverURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SynthesisError{
			Provider: p.Name(),
			Err:      fmt.Errorf("bark server returned status %d: %s", resp.StatusCode, string(msg)),
		}
	}

	var barkResp barkResponse
	if err := json.NewDecoder(resp.Body).Decode(&barkResp); err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if barkResp.Audio == "" {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("no audio payload in response")}
	}

	pcm, err := base64.StdEncoding.DecodeString(barkResp.Audio)
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("decode audio payload: %w", err)}
	}
	if len(pcm) == 0 {
		return nil, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("empty audio payload")}
	}

	rate := barkResp.SampleRate
	if rate == 0 {
		rate = audio.CanonicalSampleRate
	}
	channels := barkResp.Channels
	if channels == 0 {
		channels = 1
	}

	canonical, err := audio.ResampleToCanonical(pcm, rate, channels)
	if err != nil {
		return nil, &SynthesisError{Provider: p.Name(), Err: err}
	}

	log.Printf("[BarkTTS] preset=%s synthesized %d PCM bytes (native rate %d)", preset, len(canonical), rate)
	return &SynthesizeResponse{
		WAV: audio.EncodeWAV(canonical, audio.CanonicalSampleRate, audio.CanonicalChannels),
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *BarkProvider) ValidateConfig() error {
	if p.serverURL == "" {
		return fmt.Errorf("bark server URL is not set")
	}
	return nil
}

var _ Provider = (*BarkProvider)(nil)
