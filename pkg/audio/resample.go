package audio

import (
	"fmt"

	"github.com/asticode/go-astiav"
)

// ResampleToCanonical converts s16 PCM at the given rate and channel count
// to the canonical clip shape (mono, 24 kHz) in process, without touching the
// external transcoder. Used for backends that hand us raw PCM at their
// model's native rate.
func ResampleToCanonical(pcm []byte, sampleRate, channels int) ([]byte, error) {
	if sampleRate == CanonicalSampleRate && channels == CanonicalChannels {
		return pcm, nil
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	var inLayout astiav.ChannelLayout
	switch channels {
	case 1:
		inLayout = astiav.ChannelLayoutMono
	case 2:
		inLayout = astiav.ChannelLayoutStereo
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}

	numSamples := len(pcm) / (2 * channels)
	if numSamples == 0 {
		return nil, fmt.Errorf("input too small: %d bytes", len(pcm))
	}

	swr := astiav.AllocSoftwareResampleContext()
	if swr == nil {
		return nil, fmt.Errorf("failed to allocate resample context")
	}
	defer swr.Free()

	inFrame := astiav.AllocFrame()
	if inFrame == nil {
		return nil, fmt.Errorf("failed to allocate input frame")
	}
	defer inFrame.Free()

	outFrame := astiav.AllocFrame()
	if outFrame == nil {
		return nil, fmt.Errorf("failed to allocate output frame")
	}
	defer outFrame.Free()

	const align = 0

	inFrame.SetChannelLayout(inLayout)
	inFrame.SetSampleFormat(astiav.SampleFormatS16)
	inFrame.SetSampleRate(sampleRate)
	inFrame.SetNbSamples(numSamples)

	outFrame.SetChannelLayout(astiav.ChannelLayoutMono)
	outFrame.SetSampleFormat(astiav.SampleFormatS16)
	outFrame.SetSampleRate(CanonicalSampleRate)

	outSamples := (numSamples * CanonicalSampleRate) / sampleRate
	if outSamples == 0 {
		outSamples = 1
	}
	outFrame.SetNbSamples(outSamples)

	if err := inFrame.AllocBuffer(align); err != nil {
		return nil, fmt.Errorf("alloc input buffer: %w", err)
	}
	if err := outFrame.AllocBuffer(align); err != nil {
		return nil, fmt.Errorf("alloc output buffer: %w", err)
	}
	if err := inFrame.MakeWritable(); err != nil {
		return nil, fmt.Errorf("make input frame writable: %w", err)
	}

	// The allocator may hand back a larger, aligned buffer than the raw
	// sample data; zero-pad up to the actual size.
	bufSize, err := inFrame.SamplesBufferSize(align)
	if err != nil {
		return nil, fmt.Errorf("input buffer size: %w", err)
	}
	buf := pcm
	if len(pcm) < bufSize {
		buf = make([]byte, bufSize)
		copy(buf, pcm)
	}
	if err := inFrame.Data().SetBytes(buf[:bufSize], align); err != nil {
		return nil, fmt.Errorf("set input samples: %w", err)
	}

	if err := swr.ConvertFrame(inFrame, outFrame); err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	out, err := outFrame.Data().Bytes(align)
	if err != nil {
		return nil, fmt.Errorf("read output samples: %w", err)
	}
	return out, nil
}
