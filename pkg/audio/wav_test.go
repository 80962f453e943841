package audio

import (
	"testing"
	"time"
)

func TestEncodeDecodeWAVCanonicalShape(t *testing.T) {
	// One second of silence at the canonical rate.
	pcm := make([]byte, CanonicalSampleRate*2)

	wav := EncodeWAV(pcm, CanonicalSampleRate, CanonicalChannels)
	info, err := DecodeWAV(wav)
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}

	if info.SampleRate != 24000 {
		t.Errorf("Expected 24000 Hz, got %d", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("Expected mono, got %d channels", info.Channels)
	}
	if info.BitDepth != 16 {
		t.Errorf("Expected 16-bit samples, got %d", info.BitDepth)
	}
	if len(info.PCM) != len(pcm) {
		t.Errorf("Expected %d PCM bytes, got %d", len(pcm), len(info.PCM))
	}
	if got := info.Duration(); got != time.Second {
		t.Errorf("Expected 1s duration, got %v", got)
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("RIFF")},
		{"not riff", []byte("OggS\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"riff without chunks", append([]byte("RIFF\x00\x00\x00\x00WAVE"), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeWAV(tt.data); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestDecodeWAVRejectsCompressed(t *testing.T) {
	wav := EncodeWAV(make([]byte, 100), CanonicalSampleRate, 1)
	// Flip the format tag from PCM (1) to something else.
	wav[20] = 2
	if _, err := DecodeWAV(wav); err == nil {
		t.Error("Expected error for non-PCM format, got nil")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Second, "00:01"},
		{59 * time.Second, "00:59"},
		{time.Minute, "01:00"},
		{83 * time.Second, "01:23"},
		{3599 * time.Second, "59:59"},
		{1500 * time.Millisecond, "00:02"}, // rounds to nearest second
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
