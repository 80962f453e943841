// Package audio owns the canonical audio representation and the external
// transcoder wrapper. Every synthesized clip is normalized to the same
// container shape (mono, 24 kHz, 16-bit PCM WAV) before assembly, so the
// concatenation stage never cares which backend produced a clip.
package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Canonical clip shape shared by every synthesis backend.
const (
	CanonicalSampleRate = 24000
	CanonicalChannels   = 1
	CanonicalBitDepth   = 16
)

const wavHeaderSize = 44

// EncodeWAV wraps raw little-endian s16 PCM in a WAV container.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	bytesPerSec := sampleRate * channels * 2
	blockAlign := channels * 2

	out := make([]byte, 0, wavHeaderSize+len(pcm))
	out = append(out, []byte("RIFF")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+len(pcm)))
	out = append(out, []byte("WAVE")...)

	out = append(out, []byte("fmt ")...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM
	out = binary.LittleEndian.AppendUint16(out, uint16(channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(bytesPerSec))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, CanonicalBitDepth)

	out = append(out, []byte("data")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(pcm)))
	out = append(out, pcm...)
	return out
}

// WAVInfo describes a decoded WAV container.
type WAVInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	PCM        []byte
}

// Duration returns the playback time of the decoded samples.
func (w WAVInfo) Duration() time.Duration {
	if w.SampleRate == 0 || w.Channels == 0 || w.BitDepth == 0 {
		return 0
	}
	bytesPerSec := w.SampleRate * w.Channels * (w.BitDepth / 8)
	return time.Duration(float64(len(w.PCM)) / float64(bytesPerSec) * float64(time.Second))
}

// DecodeWAV parses a WAV container, walking chunks until it finds "fmt " and
// "data". Only uncompressed PCM is supported.
func DecodeWAV(data []byte) (WAVInfo, error) {
	var info WAVInfo

	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return info, fmt.Errorf("not a RIFF/WAVE container")
	}

	pos := 12
	var haveFmt bool
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkLen := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+chunkLen > len(data) {
			return info, fmt.Errorf("truncated %q chunk", chunkID)
		}

		switch chunkID {
		case "fmt ":
			if chunkLen < 16 {
				return info, fmt.Errorf("fmt chunk too short: %d bytes", chunkLen)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return info, fmt.Errorf("unsupported WAV format %d (want PCM)", format)
			}
			info.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			info.BitDepth = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			info.PCM = data[body : body+chunkLen]
		}

		// Chunks are word-aligned.
		pos = body + chunkLen + chunkLen%2
	}

	if !haveFmt {
		return info, fmt.Errorf("missing fmt chunk")
	}
	if info.PCM == nil {
		return info, fmt.Errorf("missing data chunk")
	}
	return info, nil
}

// FormatDuration renders a duration as mm:ss, rounding to the nearest second.
func FormatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
