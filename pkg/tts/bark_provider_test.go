package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/debatecast/debatecast/pkg/audio"
)

// assertSynthesisError fails unless err is a SynthesisError from the named
// provider.
func assertSynthesisError(t *testing.T, err error, provider string) {
	t.Helper()
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("Expected SynthesisError, got %v", err)
	}
	if synthErr.Provider != provider {
		t.Errorf("Expected provider %q, got %q", provider, synthErr.Provider)
	}
}

func barkServer(t *testing.T, handler func(w http.ResponseWriter, req barkRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		var req barkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Bad request body: %v", err)
		}
		handler(w, req)
	}))
}

func TestBarkProviderName(t *testing.T) {
	p := NewBarkProvider("http://localhost:5005")
	if p.Name() != "bark" {
		t.Errorf("Expected name 'bark', got %q", p.Name())
	}
}

func TestBarkProviderSynthesizeCanonicalShape(t *testing.T) {
	// The model answers at the canonical rate already; no resample needed.
	pcm := make([]byte, audio.CanonicalSampleRate) // half a second, mono s16

	srv := barkServer(t, func(w http.ResponseWriter, req barkRequest) {
		if req.VoicePreset != "v2/en_speaker_6" {
			t.Errorf("Expected onyx to map to v2/en_speaker_6, got %q", req.VoicePreset)
		}
		json.NewEncoder(w).Encode(barkResponse{
			Audio:      base64.StdEncoding.EncodeToString(pcm),
			SampleRate: audio.CanonicalSampleRate,
			Channels:   1,
		})
	})
	defer srv.Close()

	p := NewBarkProvider(srv.URL)
	resp, err := p.Synthesize(context.Background(), &SynthesizeRequest{
		Text:    "Hello from the local model.",
		VoiceID: "onyx",
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	info, err := audio.DecodeWAV(resp.WAV)
	if err != nil {
		t.Fatalf("Produced artifact is not a valid WAV: %v", err)
	}
	if info.SampleRate != 24000 || info.Channels != 1 || info.BitDepth != 16 {
		t.Errorf("Expected mono/24000Hz/16-bit, got %d ch / %d Hz / %d bit",
			info.Channels, info.SampleRate, info.BitDepth)
	}
	if len(info.PCM) != len(pcm) {
		t.Errorf("Expected %d PCM bytes, got %d", len(pcm), len(info.PCM))
	}
}

func TestBarkProviderUnknownVoiceFallsBack(t *testing.T) {
	srv := barkServer(t, func(w http.ResponseWriter, req barkRequest) {
		if req.VoicePreset != barkDefaultPreset {
			t.Errorf("Expected default preset for unknown voice, got %q", req.VoicePreset)
		}
		json.NewEncoder(w).Encode(barkResponse{
			Audio:      base64.StdEncoding.EncodeToString(make([]byte, 4800)),
			SampleRate: audio.CanonicalSampleRate,
		})
	})
	defer srv.Close()

	p := NewBarkProvider(srv.URL)
	if _, err := p.Synthesize(context.Background(), &SynthesizeRequest{Text: "x", VoiceID: "no-such-voice"}); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
}

func TestBarkProviderNoAudioPayload(t *testing.T) {
	srv := barkServer(t, func(w http.ResponseWriter, req barkRequest) {
		json.NewEncoder(w).Encode(barkResponse{SampleRate: 24000})
	})
	defer srv.Close()

	p := NewBarkProvider(srv.URL)
	_, err := p.Synthesize(context.Background(), &SynthesizeRequest{Text: "x", VoiceID: "onyx"})
	assertSynthesisError(t, err, "bark")
}

func TestBarkProviderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewBarkProvider(srv.URL)
	_, err := p.Synthesize(context.Background(), &SynthesizeRequest{Text: "x", VoiceID: "onyx"})
	assertSynthesisError(t, err, "bark")
}

func TestBarkProviderMissingURL(t *testing.T) {
	p := NewBarkProvider("")
	if err := p.ValidateConfig(); err == nil {
		t.Error("Expected error for missing server URL, got nil")
	}
	_, err := p.Synthesize(context.Background(), &SynthesizeRequest{Text: "x", VoiceID: "onyx"})
	assertSynthesisError(t, err, "bark")
}
