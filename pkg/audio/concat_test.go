package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeClip writes a canonical WAV clip of the given duration and returns
// its path.
func writeClip(t *testing.T, dir, name string, d time.Duration) string {
	t.Helper()
	samples := int(float64(CanonicalSampleRate) * d.Seconds())
	pcm := make([]byte, samples*2)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, EncodeWAV(pcm, CanonicalSampleRate, CanonicalChannels), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// concatRunner inspects the manifest while it still exists and simulates
// the transcoder writing (or failing to write) the output file.
type concatRunner struct {
	manifestPath    string
	manifestContent string
	fail            bool
}

func (f *concatRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out string
	for i, a := range args {
		if a == "-i" && i+1 < len(args) {
			f.manifestPath = args[i+1]
			data, err := os.ReadFile(f.manifestPath)
			if err != nil {
				return nil, fmt.Errorf("manifest missing during run: %v", err)
			}
			f.manifestContent = string(data)
		}
	}
	out = args[len(args)-1]

	if f.fail {
		return nil, fmt.Errorf("concat failed")
	}
	if err := os.WriteFile(out, []byte("mp3"), 0o644); err != nil {
		return nil, err
	}
	return nil, nil
}

func TestAssembleOrderAndDuration(t *testing.T) {
	dir := t.TempDir()
	a1 := writeClip(t, dir, "a1.wav", 2*time.Second)
	a3 := writeClip(t, dir, "a3.wav", 3*time.Second)
	outPath := filepath.Join(dir, "episode.mp3")

	runner := &concatRunner{}
	c := NewConcatenator("ffmpeg")
	c.SetRunner(runner.run)

	duration, err := c.Assemble(context.Background(), []string{a1, a3}, outPath)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if duration != 5*time.Second {
		t.Errorf("Expected 5s total duration, got %v", duration)
	}

	// Manifest must list the clips in order, with no gaps or placeholders.
	lines := strings.Split(strings.TrimSpace(runner.manifestContent), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 manifest lines, got %d:\n%s", len(lines), runner.manifestContent)
	}
	if !strings.Contains(lines[0], "a1.wav") || !strings.Contains(lines[1], "a3.wav") {
		t.Errorf("Manifest order wrong:\n%s", runner.manifestContent)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

func TestAssembleRemovesManifestOnSuccess(t *testing.T) {
	dir := t.TempDir()
	clip := writeClip(t, dir, "clip.wav", time.Second)

	runner := &concatRunner{}
	c := NewConcatenator("ffmpeg")
	c.SetRunner(runner.run)

	if _, err := c.Assemble(context.Background(), []string{clip}, filepath.Join(dir, "out.mp3")); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if runner.manifestPath == "" {
		t.Fatal("Runner never saw a manifest")
	}
	if _, err := os.Stat(runner.manifestPath); !os.IsNotExist(err) {
		t.Errorf("Manifest %s still exists after success", runner.manifestPath)
	}
}

func TestAssembleRemovesManifestOnFailure(t *testing.T) {
	dir := t.TempDir()
	clip := writeClip(t, dir, "clip.wav", time.Second)
	outPath := filepath.Join(dir, "out.mp3")

	runner := &concatRunner{fail: true}
	c := NewConcatenator("ffmpeg")
	c.SetRunner(runner.run)

	_, err := c.Assemble(context.Background(), []string{clip}, outPath)

	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("Expected AssemblyError, got %v", err)
	}

	if _, statErr := os.Stat(runner.manifestPath); !os.IsNotExist(statErr) {
		t.Errorf("Manifest %s still exists after failure", runner.manifestPath)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Errorf("Partial output %s left behind after failure", outPath)
	}
}

func TestAssembleRejectsEmptyInput(t *testing.T) {
	c := NewConcatenator("ffmpeg")
	c.SetRunner((&concatRunner{}).run)

	_, err := c.Assemble(context.Background(), nil, "out.mp3")
	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("Expected AssemblyError for empty input, got %v", err)
	}
}

func TestAssembleRejectsBrokenClip(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewConcatenator("ffmpeg")
	c.SetRunner((&concatRunner{}).run)

	if _, err := c.Assemble(context.Background(), []string{bad}, filepath.Join(dir, "out.mp3")); err == nil {
		t.Error("Expected error for undecodable clip, got nil")
	}
}
