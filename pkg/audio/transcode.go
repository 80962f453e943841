package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes the external transcoder binary and returns its stdout.
// Tests swap it out so nothing shells out.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner runs the command for real, capturing stderr for diagnostics.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s failed: %w (%s)", name, err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return out, nil
}

// Transcoder wraps ffmpeg for per-clip decoding. The binary's argument
// surface stays inside this type; callers only see bytes in, bytes out.
type Transcoder struct {
	ffmpegPath string
	run        Runner
}

// NewTranscoder creates a Transcoder using the given ffmpeg binary
// ("ffmpeg" resolves via PATH when empty).
func NewTranscoder(ffmpegPath string) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Transcoder{ffmpegPath: ffmpegPath, run: execRunner}
}

// SetRunner replaces the command runner. Test hook.
func (t *Transcoder) SetRunner(run Runner) { t.run = run }

// DecodeToCanonicalPCM decodes an arbitrary encoded audio stream (mp3, opus,
// whatever the backend returned) to canonical mono 24 kHz s16 PCM. The
// encoded bytes pass through a temporary file which is removed on every exit
// path.
func (t *Transcoder) DecodeToCanonicalPCM(ctx context.Context, encoded []byte, ext string) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("empty input stream")
	}
	if ext == "" {
		ext = "bin"
	}

	tmp, err := os.CreateTemp("", "clip-*."+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp clip: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp clip: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp clip: %w", err)
	}

	pcm, err := t.run(ctx, t.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", tmp.Name(),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", strconv.Itoa(CanonicalChannels),
		"-ar", strconv.Itoa(CanonicalSampleRate),
		"pipe:1",
	)
	if err != nil {
		return nil, err
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("transcoder produced no samples")
	}
	return pcm, nil
}
