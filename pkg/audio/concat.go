package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// AssemblyError wraps a concatenation failure. The debate engine downgrades
// it to "no podcast" instead of failing the run.
type AssemblyError struct {
	Err error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("audio assembly failed: %v", e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// Concatenator joins an ordered list of canonical WAV clips into one encoded
// episode through the ffmpeg concat demuxer.
type Concatenator struct {
	ffmpegPath string
	run        Runner
}

// NewConcatenator creates a Concatenator using the given ffmpeg binary.
func NewConcatenator(ffmpegPath string) *Concatenator {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Concatenator{ffmpegPath: ffmpegPath, run: execRunner}
}

// SetRunner replaces the command runner. Test hook.
func (c *Concatenator) SetRunner(run Runner) { c.run = run }

// Assemble concatenates the clips at inputPaths, in order, into an MP3 at
// outPath (constant quality VBR). It returns the total playback duration,
// measured from the input clips' sample counts. The concat manifest is
// transient: it is written next to the output and removed on every exit
// path, including cancellation and transcoder failure.
func (c *Concatenator) Assemble(ctx context.Context, inputPaths []string, outPath string) (time.Duration, error) {
	if len(inputPaths) == 0 {
		return 0, &AssemblyError{Err: fmt.Errorf("no input clips")}
	}

	total, err := c.measure(inputPaths)
	if err != nil {
		return 0, &AssemblyError{Err: err}
	}

	manifest := outPath + ".concat.txt"
	if err := writeManifest(manifest, inputPaths); err != nil {
		return 0, &AssemblyError{Err: err}
	}
	defer os.Remove(manifest)

	_, err = c.run(ctx, c.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-codec:a", "libmp3lame",
		"-q:a", "4",
		outPath,
	)
	if err != nil {
		// Do not leave a partial episode behind.
		os.Remove(outPath)
		return 0, &AssemblyError{Err: err}
	}

	log.Printf("[Concatenator] Assembled %d clips into %s (%s)", len(inputPaths), outPath, FormatDuration(total))
	return total, nil
}

// measure sums the playback time of the input WAV clips.
func (c *Concatenator) measure(inputPaths []string) (time.Duration, error) {
	var total time.Duration
	for _, p := range inputPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			return 0, fmt.Errorf("read clip %s: %w", p, err)
		}
		info, err := DecodeWAV(data)
		if err != nil {
			return 0, fmt.Errorf("clip %s: %w", p, err)
		}
		total += info.Duration()
	}
	return total, nil
}

// writeManifest emits the concat-demuxer file list. Single quotes in paths
// are escaped per the demuxer's quoting rules.
func writeManifest(path string, inputPaths []string) error {
	var b strings.Builder
	for _, p := range inputPaths {
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(p, "'", `'\''`))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
